package models

// Vendor neutral records produced by the driver getters. Every record is
// built fresh on each call, there is no cache behind them.

// Interface describes one interface of the device.
type Interface struct {
	Name        string `json:"name"`
	IsEnabled   bool   `json:"is_enabled"`
	IsUp        bool   `json:"is_up"`
	MacAddress  string `json:"mac_address"`
	Description string `json:"description"`
	// Speed is the interface bandwidth in device native units (kbit/s).
	Speed int64 `json:"speed"`
	// LastFlapped is the number of seconds since the last state transition.
	LastFlapped int64 `json:"last_flapped"`
}

// InterfaceCounters holds the per interface traffic counters. A counter the
// device did not report is -1, which is distinct from a counted zero.
type InterfaceCounters struct {
	Name               string `json:"name"`
	RxUnicastPackets   int64  `json:"rx_unicast_packets"`
	RxMulticastPackets int64  `json:"rx_multicast_packets"`
	RxBroadcastPackets int64  `json:"rx_broadcast_packets"`
	RxOctets           int64  `json:"rx_octets"`
	RxErrors           int64  `json:"rx_errors"`
	TxUnicastPackets   int64  `json:"tx_unicast_packets"`
	TxMulticastPackets int64  `json:"tx_multicast_packets"`
	TxBroadcastPackets int64  `json:"tx_broadcast_packets"`
	TxOctets           int64  `json:"tx_octets"`
	TxErrors           int64  `json:"tx_errors"`
	TxDiscards         int64  `json:"tx_discards"`
}

// BGPInstance groups the neighbors of one BGP instance (vrf).
type BGPInstance struct {
	RouterID string                  `json:"router_id"`
	Peers    map[string]*BGPNeighbor `json:"peers"`
}

// BGPNeighbor describes one BGP session, keyed by neighbor address in the
// owning BGPInstance.
type BGPNeighbor struct {
	LocalAS        uint64 `json:"local_as"`
	RemoteAS       uint64 `json:"remote_as"`
	RemoteRouterID string `json:"remote_id"`
	IsEnabled      bool   `json:"is_enabled"`
	IsUp           bool   `json:"is_up"`
	Description    string `json:"description"`
	// Uptime is the session establishment time in seconds.
	Uptime int64 `json:"uptime"`
	// AddressFamilies carries per address-family prefix counts. The oper
	// model subtree for it is not wired yet, the map is always empty.
	AddressFamilies map[string]*BGPAddressFamily `json:"address_families"`
}

// BGPAddressFamily holds per address-family prefix counters.
type BGPAddressFamily struct {
	ReceivedPrefixes int64 `json:"received_prefixes"`
	AcceptedPrefixes int64 `json:"accepted_prefixes"`
	SentPrefixes     int64 `json:"sent_prefixes"`
}

// Facts is the device identity record.
type Facts struct {
	Hostname      string   `json:"hostname"`
	FQDN          string   `json:"fqdn"`
	Model         string   `json:"model"`
	SerialNumber  string   `json:"serial_number"`
	OSVersion     string   `json:"os_version"`
	Uptime        int64    `json:"uptime"`
	InterfaceList []string `json:"interface_list"`
}

// Environment is returned by GetEnvironment. The environment sensor oper
// models are not wired, every map is empty but non-nil so callers can range
// over them safely.
type Environment struct {
	Fans        map[string]bool    `json:"fans"`
	Temperature map[string]float64 `json:"temperature"`
	Power       map[string]bool    `json:"power"`
	CPU         map[string]float64 `json:"cpu"`
	Memory      map[string]uint64  `json:"memory"`
}

// NewEnvironment returns an Environment with all maps initialized.
func NewEnvironment() *Environment {
	return &Environment{
		Fans:        map[string]bool{},
		Temperature: map[string]float64{},
		Power:       map[string]bool{},
		CPU:         map[string]float64{},
		Memory:      map[string]uint64{},
	}
}
