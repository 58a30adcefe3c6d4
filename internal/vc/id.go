package vc

import "github.com/google/uuid"

// ID derives the deterministic identifier for the record: a UUIDv5 over
// the canonical serialization. Identical records always map to the same
// UUID, so re-inserting the same content collides instead of duplicating.
// The identifier is assigned once at insert time and never used for
// lookup; dedup goes by VCName.
func (r Record) ID() string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(r.Canonical())).String()
}
