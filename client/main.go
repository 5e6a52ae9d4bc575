package main

import "github.com/iptecharch/iosxr-driver/client/cmd"

func main() {
	cmd.Execute()
}
