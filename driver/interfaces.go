package driver

import (
	"context"
	"time"

	"github.com/iptecharch/iosxr-driver/conversion"
	"github.com/iptecharch/iosxr-driver/models"
	"github.com/iptecharch/iosxr-driver/tree"
)

const (
	interfacesFilter = `<interfaces xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-pfi-im-cmd-oper"/>`

	// nullInterface is the discard pseudo interface, never surfaced to callers
	nullInterface = "Null0"
	// imStateUp is the admin/line "up" token of the interface manager
	imStateUp = "im-state-up"
	// notReported marks a counter the device did not include, as opposed to
	// a counted zero
	notReported = -1
)

func (d *XRDriver) GetInterfaces(ctx context.Context) (map[string]*models.Interface, error) {
	node, err := d.getOper("get-interfaces", interfacesFilter)
	if err != nil {
		return nil, err
	}
	return normalizeInterfaces(node, time.Now()), nil
}

func (d *XRDriver) GetInterfacesCounters(ctx context.Context) (map[string]*models.InterfaceCounters, error) {
	node, err := d.getOper("get-interfaces-counters", interfacesFilter)
	if err != nil {
		return nil, err
	}
	return normalizeInterfacesCounters(node), nil
}

func normalizeInterfaces(node interface{}, now time.Time) map[string]*models.Interface {
	result := map[string]*models.Interface{}
	for _, v := range tree.Sequence(tree.Find(node, "interfaces.interface-xr.interface")) {
		name := tree.Text(v, "interface-name", "")
		if name == "" || name == nullInterface {
			continue
		}
		// an unreported transition time defaults to 0, which yields an
		// implausibly large flap age on purpose
		transition := conversion.ToInt(tree.Find(v, "last-state-transition-time"), 0)
		result[name] = &models.Interface{
			Name:        name,
			IsEnabled:   tree.Text(v, "state", "") == imStateUp,
			IsUp:        tree.Text(v, "line-state", "") == imStateUp,
			MacAddress:  tree.Text(v, "mac-address.address", ""),
			Description: tree.Text(v, "description", ""),
			Speed:       conversion.ToInt(tree.Find(v, "bandwidth"), 0),
			LastFlapped: now.Unix() - transition,
		}
	}
	return result
}

func normalizeInterfacesCounters(node interface{}) map[string]*models.InterfaceCounters {
	result := map[string]*models.InterfaceCounters{}
	for _, v := range tree.Sequence(tree.Find(node, "interfaces.interface-xr.interface")) {
		name := tree.Text(v, "interface-name", "")
		if name == "" || name == nullInterface {
			continue
		}
		stats := tree.Find(v, "interface-statistics.full-interface-stats")
		counter := func(field string) int64 {
			return conversion.ToInt(tree.Find(stats, field), notReported)
		}
		result[name] = &models.InterfaceCounters{
			Name:               name,
			RxUnicastPackets:   counter("packets-received"),
			RxMulticastPackets: counter("multicast-packets-received"),
			RxBroadcastPackets: counter("broadcast-packets-received"),
			RxOctets:           counter("bytes-received"),
			RxErrors:           counter("input-errors"),
			TxUnicastPackets:   counter("packets-sent"),
			TxMulticastPackets: counter("multicast-packets-sent"),
			TxBroadcastPackets: counter("broadcast-packets-sent"),
			TxOctets:           counter("bytes-sent"),
			TxErrors:           counter("output-errors"),
			TxDiscards:         counter("output-drops"),
		}
	}
	return result
}
