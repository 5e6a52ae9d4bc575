package driver

import (
	"context"
	"sort"

	"github.com/iptecharch/iosxr-driver/conversion"
	"github.com/iptecharch/iosxr-driver/models"
	"github.com/iptecharch/iosxr-driver/tree"
)

const factsFilter = `<system-time xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-shellutil-oper"/>` +
	`<inventory xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-invmgr-oper"/>`

// factsKeys is the allow-list of raw facts keys that make it into the record.
var factsKeys = []string{"hostname", "fqdn", "model", "serial", "os_version", "uptime"}

func (d *XRDriver) GetFacts(ctx context.Context) (*models.Facts, error) {
	node, err := d.getOper("get-facts", factsFilter)
	if err != nil {
		return nil, err
	}
	// the interface list is derived through the interface normalizer, not
	// read from the facts tree
	ifaces, err := d.GetInterfaces(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ifaces))
	for name := range ifaces {
		names = append(names, name)
	}
	sort.Strings(names)

	return normalizeFacts(rawFacts(node), names), nil
}

// rawFacts flattens the system-time and inventory subtrees into the loosely
// typed facts mapping.
func rawFacts(node interface{}) map[string]interface{} {
	hostname := tree.Text(node, "system-time.uptime.host-name", "")
	basic := tree.Find(node, "inventory.racks.rack.attributes.inv-basic-bag")
	return map[string]interface{}{
		"hostname":   hostname,
		"fqdn":       hostname,
		"uptime":     tree.Find(node, "system-time.uptime.uptime"),
		"model":      tree.Text(basic, "model-name", ""),
		"serial":     tree.Text(basic, "serial-number", ""),
		"os_version": tree.Text(basic, "software-revision", ""),
		"vendor":     "Cisco",
	}
}

// normalizeFacts filters the raw mapping down to the allowed keys, renaming
// serial to serial_number and converting uptime to seconds.
func normalizeFacts(raw map[string]interface{}, interfaces []string) *models.Facts {
	f := &models.Facts{
		InterfaceList: interfaces,
	}
	for _, key := range factsKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch key {
		case "hostname":
			f.Hostname = conversion.ToString(v, "")
		case "fqdn":
			f.FQDN = conversion.ToString(v, "")
		case "model":
			f.Model = conversion.ToString(v, "")
		case "serial":
			f.SerialNumber = conversion.ToString(v, "")
		case "os_version":
			f.OSVersion = conversion.ToString(v, "")
		case "uptime":
			f.Uptime = conversion.ToInt(v, 0)
		}
	}
	return f
}
