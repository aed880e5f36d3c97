package country

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/countrydict/pkg/dataset"
	"github.com/sells-group/countrydict/pkg/geocode"
)

// Geocoder places an address in a country. *geocode.Resolver implements it.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocode.Result, error)
}

// ByAddress returns the country an address lies in. The geocoder's errors are
// returned unchanged. A country name the dataset does not know yields a nil
// record and a nil error.
func (d *Dictionary) ByAddress(ctx context.Context, address string) (*Record, error) {
	res, err := d.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	r := d.ByName(res.Country)
	if r == nil {
		zap.L().Debug("geocoded country not in dataset",
			zap.String("address", address),
			zap.String("country", res.Country),
			zap.String("source", res.Source),
		)
	}
	return r, nil
}

// AddressResult is the outcome of resolving one address in a batch.
type AddressResult struct {
	Address string
	Country *Record
	Err     error
}

// ByAddresses resolves several addresses in parallel, bounded by the batch
// concurrency. Each address still queries its providers one after another.
// Results keep the input order; per-address failures are reported in Err.
func (d *Dictionary) ByAddresses(ctx context.Context, addresses []string) []AddressResult {
	results := make([]AddressResult, len(addresses))
	if len(addresses) == 0 {
		return results
	}

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.batchConcurrency)

	for i, addr := range addresses {
		eg.Go(func() error {
			r, err := d.ByAddress(gCtx, addr)
			results[i] = AddressResult{Address: addr, Country: r, Err: err}
			return nil
		})
	}

	_ = eg.Wait()
	return results
}

// InContinent reports whether address lies on continent. An address that is
// itself a country name is answered from the dataset without any request;
// anything else goes through the geocoder, whose errors are returned unchanged.
func (d *Dictionary) InContinent(ctx context.Context, address string, continent dataset.Continent) (bool, error) {
	if r := d.ByName(address); r != nil {
		return r.Continent == continent, nil
	}
	r, err := d.ByAddress(ctx, address)
	if err != nil {
		return false, err
	}
	return r != nil && r.Continent == continent, nil
}

// InContinentSync reports whether name is a country on continent. It never
// geocodes; names not in the dataset report false.
func (d *Dictionary) InContinentSync(name string, continent dataset.Continent) bool {
	r := d.ByName(name)
	return r != nil && r.Continent == continent
}

// InEurope reports whether address lies in Europe.
func (d *Dictionary) InEurope(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.Europe)
}

// InEuropeSync reports whether name is a European country, without geocoding.
func (d *Dictionary) InEuropeSync(name string) bool {
	return d.InContinentSync(name, dataset.Europe)
}

// InAfrica reports whether address lies in Africa.
func (d *Dictionary) InAfrica(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.Africa)
}

// InAsia reports whether address lies in Asia.
func (d *Dictionary) InAsia(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.Asia)
}

// InNorthAmerica reports whether address lies in North America.
func (d *Dictionary) InNorthAmerica(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.NorthAmerica)
}

// InOceania reports whether address lies in Oceania.
func (d *Dictionary) InOceania(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.Oceania)
}

// InSouthAmerica reports whether address lies in South America.
func (d *Dictionary) InSouthAmerica(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.SouthAmerica)
}

// InAntarctica reports whether address lies in Antarctica.
func (d *Dictionary) InAntarctica(ctx context.Context, address string) (bool, error) {
	return d.InContinent(ctx, address, dataset.Antarctica)
}
