package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind names a structural problem found on a supply record
type Kind string

const (
	KindZeroWeight     Kind = "ZERO_WEIGHT"
	KindMissingWeight  Kind = "MISSING_WEIGHT"
	KindInvalidFactory Kind = "INVALID_FACTORY"
	KindNegativeWeight Kind = "NEGATIVE_WEIGHT"
	KindMissingTruck   Kind = "MISSING_TRUCK"
	KindMissingFarm    Kind = "MISSING_FARM"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Priority ranks how urgently a flag needs attention
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

func (p Priority) rank() int {
	if p == PriorityHigh {
		return 0
	}
	return 1
}

// Flag is one advisory finding. A record may carry several.
type Flag struct {
	RecordID        uuid.UUID
	EntryDate       time.Time
	Kind            Kind
	Priority        Priority
	Description     string
	SuggestedAction string
	AutoFixable     bool
}

// Scan checks every record independently and returns the flags ordered by
// priority, newest record first, then record id and kind. The result depends
// only on its input.
func Scan(records []haulage.SupplyRecord, dir haulage.Directory) []Flag {
	var flags []Flag
	for i := range records {
		flags = append(flags, scanRecord(&records[i], dir)...)
	}
	sort.SliceStable(flags, func(i, j int) bool {
		a, b := flags[i], flags[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() < b.Priority.rank()
		}
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if a.RecordID != b.RecordID {
			return a.RecordID.String() < b.RecordID.String()
		}
		return a.Kind < b.Kind
	})
	return flags
}

func scanRecord(r *haulage.SupplyRecord, dir haulage.Directory) []Flag {
	var flags []Flag
	add := func(kind Kind, priority Priority, description, action string) {
		flags = append(flags, Flag{
			RecordID:        r.ID,
			EntryDate:       r.EntryDate,
			Kind:            kind,
			Priority:        priority,
			Description:     description,
			SuggestedAction: action,
		})
	}

	w := r.Factory.Weight
	switch {
	case !w.Valid:
		add(KindMissingWeight, PriorityMedium,
			"factory weight was never recorded",
			"enter the weight from the factory weighbridge ticket")
	case w.Decimal.IsZero():
		if canAutoFix(r, dir) {
			add(KindZeroWeight, PriorityHigh,
				"factory weight is zero",
				fmt.Sprintf("copy the farm weight of %s kg", r.Farm.Weight.Decimal.String()))
			flags[len(flags)-1].AutoFixable = true
		} else {
			add(KindZeroWeight, PriorityHigh,
				"factory weight is zero and cannot be filled from the farm side",
				"enter the weight from the factory weighbridge ticket")
		}
	case w.Decimal.IsNegative():
		add(KindNegativeWeight, PriorityHigh,
			fmt.Sprintf("factory weight is negative (%s kg)", w.Decimal.String()),
			"enter the correct factory weight")
	}

	if r.FactoryID == nil {
		add(KindInvalidFactory, PriorityHigh,
			"no factory assigned",
			"select or create the receiving factory")
	} else if _, ok := dir.FactoryName(r.FactoryID); !ok {
		add(KindInvalidFactory, PriorityHigh,
			fmt.Sprintf("factory %s does not exist", r.FactoryID),
			"select or create the receiving factory")
	}

	if r.TruckID == nil {
		add(KindMissingTruck, PriorityMedium,
			"no truck assigned",
			"select or create the truck that carried the load")
	} else if _, ok := dir.TruckNumber(r.TruckID); !ok {
		add(KindMissingTruck, PriorityMedium,
			fmt.Sprintf("truck %s does not exist", r.TruckID),
			"select or create the truck that carried the load")
	}

	if r.FarmID == nil {
		add(KindMissingFarm, PriorityMedium,
			"no farm assigned",
			"select or create the supplying farm")
	} else if _, ok := dir.FarmName(r.FarmID); !ok {
		add(KindMissingFarm, PriorityMedium,
			fmt.Sprintf("farm %s does not exist", r.FarmID),
			"select or create the supplying farm")
	}

	return flags
}

// canAutoFix reports whether a zero factory weight can be replaced by a
// positive farm weight. Records whose farm or factory is missing or
// unresolved are left for the operator.
func canAutoFix(r *haulage.SupplyRecord, dir haulage.Directory) bool {
	fw := r.Factory.Weight
	if !fw.Valid || !fw.Decimal.IsZero() || !r.Farm.Weight.Valid || !r.Farm.Weight.Decimal.IsPositive() {
		return false
	}
	if _, ok := dir.FarmName(r.FarmID); !ok {
		return false
	}
	_, ok := dir.FactoryName(r.FactoryID)
	return ok
}

// AutoFix is a planned correction: set the record's factory weight
type AutoFix struct {
	RecordID      uuid.UUID
	FactoryWeight decimal.Decimal
}

// PlanAutoFix lists the corrections that need no operator input. Only records
// with a zero factory weight and a positive farm weight qualify.
func PlanAutoFix(records []haulage.SupplyRecord, dir haulage.Directory) []AutoFix {
	var fixes []AutoFix
	for i := range records {
		r := &records[i]
		if canAutoFix(r, dir) {
			fixes = append(fixes, AutoFix{RecordID: r.ID, FactoryWeight: r.Farm.Weight.Decimal})
		}
	}
	return fixes
}

// Apply performs the fix on r through the record's normal mutation path
func (f AutoFix) Apply(r *haulage.SupplyRecord) error {
	if r.ID != f.RecordID {
		return fmt.Errorf("auto-fix for %s applied to record %s", f.RecordID, r.ID)
	}
	return r.SetFactoryWeight(f.FactoryWeight)
}

// Summary counts flags by kind
func Summary(flags []Flag) map[Kind]int {
	out := make(map[Kind]int)
	for _, f := range flags {
		out[f.Kind]++
	}
	return out
}
