package redisx

import "time"

const (
	// Catalog version marker: catalog:version -> monotonically growing counter.
	// The back office INCRs it on every product write; the bot compares it
	// against the version each cache entry was filled under.
	KeyCatalogVersion = "catalog:version"

	// Back-office session token: admin:session:{token} -> "1"
	KeyAdminSession = "admin:session:%s"
)

var (
	TTLAdminSession = 24 * time.Hour
)
