package config

const (
	TransportNetconf = "netconf"
	TransportGRPC    = "grpc"

	defaultNCPort   = 830
	defaultGRPCPort = 57400
	// defaultTimeout is the per RPC timeout in seconds.
	defaultTimeout = 60
)
