package haulage

import "github.com/google/uuid"

// Directory resolves truck, farm and factory ids to display names.
// It is built once per snapshot so reports and scans never query per row.
type Directory struct {
	trucks    map[uuid.UUID]string
	farms     map[uuid.UUID]string
	factories map[uuid.UUID]string
}

// NewDirectory indexes the given partners by id
func NewDirectory(trucks []Truck, farms []Farm, factories []Factory) Directory {
	d := Directory{
		trucks:    make(map[uuid.UUID]string, len(trucks)),
		farms:     make(map[uuid.UUID]string, len(farms)),
		factories: make(map[uuid.UUID]string, len(factories)),
	}
	for _, t := range trucks {
		d.trucks[t.ID] = t.TruckNumber
	}
	for _, f := range farms {
		d.farms[f.ID] = f.Name
	}
	for _, f := range factories {
		d.factories[f.ID] = f.Name
	}
	return d
}

// TruckNumber returns the number of the referenced truck
func (d Directory) TruckNumber(id *uuid.UUID) (string, bool) {
	return lookup(d.trucks, id)
}

// FarmName returns the name of the referenced farm
func (d Directory) FarmName(id *uuid.UUID) (string, bool) {
	return lookup(d.farms, id)
}

// FactoryName returns the name of the referenced factory
func (d Directory) FactoryName(id *uuid.UUID) (string, bool) {
	return lookup(d.factories, id)
}

func lookup(index map[uuid.UUID]string, id *uuid.UUID) (string, bool) {
	if id == nil {
		return "", false
	}
	name, ok := index[*id]
	return name, ok
}
