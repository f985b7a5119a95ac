// Package resultenc marshals the three check result documents to the
// exact JSON shapes the monitoring platform's item value parsers expect.
package resultenc

import (
	"encoding/json"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/rsmtypes"
)

// DNS encodes a DNS check result document.
func DNS(r rsmtypes.DNSResult) ([]byte, error) {
	return json.Marshal(r)
}

// RDDS encodes an RDDS check result document.
func RDDS(r rsmtypes.RDDSResult) ([]byte, error) {
	return json.Marshal(r)
}

// RDAP encodes an RDAP check result document.
func RDAP(r rsmtypes.RDAPResult) ([]byte, error) {
	return json.Marshal(r)
}
