package reference

import (
	"apmeta/internal/services"
)

// Data bundles the reference datasets for one batch.
type Data struct {
	Authority *Authority
	Cycles    []Cycle
}

// Load reads both datasets. Failures are configuration errors: the batch
// cannot be described without them.
func Load(artistsPath, cyclesPath string) (*Data, error) {
	artists, err := LoadArtists(artistsPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "reference", "load artists", "Artist authority list could not be read", err)
	}
	cycles, err := LoadCycles(cyclesPath)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "reference", "load cycles", "Exhibition-cycle subjects could not be read", err)
	}
	return &Data{Authority: NewAuthority(artists), Cycles: cycles}, nil
}
