package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestSupplierID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestSupplierID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestContractID  = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestVersionID   = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	TestJobID       = uuid.MustParse("00000000-0000-0000-0000-000000000030")
)
