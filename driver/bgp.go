package driver

import (
	"context"

	"github.com/iptecharch/iosxr-driver/conversion"
	"github.com/iptecharch/iosxr-driver/models"
	"github.com/iptecharch/iosxr-driver/tree"
)

const (
	bgpFilter = `<bgp xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-ipv4-bgp-oper"/>`

	// bgpEstablished is the connection-state token of an established session
	bgpEstablished = "bgp-st-estab"
)

func (d *XRDriver) GetBGPNeighbors(ctx context.Context) (map[string]*models.BGPInstance, error) {
	node, err := d.getOper("get-bgp-neighbors", bgpFilter)
	if err != nil {
		return nil, err
	}
	return normalizeBGPNeighbors(node), nil
}

func normalizeBGPNeighbors(node interface{}) map[string]*models.BGPInstance {
	result := map[string]*models.BGPInstance{}
	for _, inst := range tree.Sequence(tree.Find(node, "bgp.instances.instance")) {
		name := tree.Text(inst, "instance-name", "")
		if name == "" {
			name = "default"
		}
		vrf := tree.Find(inst, "instance-active.default-vrf")
		bi := &models.BGPInstance{
			RouterID: tree.Text(vrf, "global-process-info.vrf.router-id", ""),
			Peers:    map[string]*models.BGPNeighbor{},
		}
		// the neighbors collection is coerced on its own shape, independent
		// of how the instances collection arrived
		for _, n := range tree.Sequence(tree.Find(vrf, "neighbors.neighbor")) {
			addr := tree.Text(n, "neighbor-address", "")
			if addr == "" {
				continue
			}
			bi.Peers[addr] = &models.BGPNeighbor{
				LocalAS:        conversion.ToUint(tree.Find(n, "local-as"), 0),
				RemoteAS:       conversion.ToUint(tree.Find(n, "remote-as"), 0),
				RemoteRouterID: tree.Text(n, "router-id", ""),
				// the wire flag is string typed; only the literal "false"
				// means the neighbor is administratively enabled
				IsEnabled:       tree.Text(n, "is-administratively-shut-down", "") == "false",
				IsUp:            tree.Text(n, "connection-state", "") == bgpEstablished,
				Description:     tree.Text(n, "description", ""),
				Uptime:          conversion.ToInt(tree.Find(n, "connection-established-time"), 0),
				AddressFamilies: map[string]*models.BGPAddressFamily{},
			}
		}
		result[name] = bi
	}
	return result
}
