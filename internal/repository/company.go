package repository

import "github.com/bariskaantoprak-ui/ITSO/internal/model"

// CompanyDirectory is a read-only lookup over the member companies.
type CompanyDirectory struct {
	companies []model.Company
	byID      map[string]int
}

// NewCompanyDirectory indexes companies by id, keeping their order.
func NewCompanyDirectory(companies []model.Company) *CompanyDirectory {
	d := &CompanyDirectory{
		companies: companies,
		byID:      make(map[string]int, len(companies)),
	}
	for i, c := range companies {
		d.byID[c.ID] = i
	}
	return d
}

// List returns every company in directory order.
func (d *CompanyDirectory) List() []model.Company {
	out := make([]model.Company, len(d.companies))
	copy(out, d.companies)
	return out
}

// Get returns one company or ErrNotFound.
func (d *CompanyDirectory) Get(id string) (*model.Company, error) {
	i, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := d.companies[i]
	return &c, nil
}
