package main

import (
	"fmt"
	"log"

	flag "github.com/spf13/pflag"

	"github.com/aurumledger/aurum/packages/ids"
)

func main() {
	certFilePath := flag.String("cert", "", "path of the PEM encoded node certificate")
	flag.Parse()

	if *certFilePath == "" {
		log.Fatal("the --cert flag is required")
	}

	nodeID, err := ids.NodeIDFromCertFile(*certFilePath)
	if err != nil {
		log.Fatalf("failed to derive the node ID: %s", err)
	}

	fmt.Println(nodeID)
}
