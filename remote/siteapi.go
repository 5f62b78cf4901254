package remote

import (
	"net/http"

	"github.com/storeops/networking"
	"github.com/storeops/networking/request"
)

// SiteAPILoader loads API information for a site. It exists so callers can
// substitute the remote in tests.
type SiteAPILoader interface {
	LoadAPIInformation(siteID int64, completion func(SiteAPI, error))
}

// SiteAPI describes the REST namespaces a site exposes.
type SiteAPI struct {
	SiteID            int64
	Namespaces        []string
	HighestWooVersion request.WooAPIVersion
}

// SiteAPIRemote reads the site's REST root through the Jetpack tunnel.
type SiteAPIRemote struct {
	*Remote
}

// Ensure SiteAPIRemote satisfies SiteAPILoader at compile time.
var _ SiteAPILoader = (*SiteAPIRemote)(nil)

// NewSiteAPIRemote creates a SiteAPIRemote using network.
func NewSiteAPIRemote(network networking.Network) *SiteAPIRemote {
	return &SiteAPIRemote{Remote: New(network)}
}

// LoadAPIInformation fetches the namespaces registered on siteID.
func (r *SiteAPIRemote) LoadAPIInformation(siteID int64, completion func(SiteAPI, error)) {
	req := request.Jetpack{
		WooAPIVersion: request.WooNone,
		Method:        http.MethodGet,
		SiteID:        siteID,
		Path:          "",
		Parameters:    request.Parameters{"_fields": "authentication,namespaces"},
	}
	Enqueue[SiteAPI](r.Remote, req, SiteAPIMapper{SiteID: siteID}, completion)
}

// SiteAPIMapper maps the REST root response.
type SiteAPIMapper struct {
	SiteID int64
}

// Map decodes the namespaces and derives the highest WooCommerce version.
func (m SiteAPIMapper) Map(data []byte) (SiteAPI, error) {
	body, err := unwrap[struct {
		Namespaces []string `json:"namespaces"`
	}](data)
	if err != nil {
		return SiteAPI{}, err
	}

	return SiteAPI{
		SiteID:            m.SiteID,
		Namespaces:        body.Namespaces,
		HighestWooVersion: highestWooVersion(body.Namespaces),
	}, nil
}

// highestWooVersion picks the newest wc/* namespace present.
func highestWooVersion(namespaces []string) request.WooAPIVersion {
	best := request.WooNone
	for _, ns := range namespaces {
		switch v := request.WooAPIVersion(ns); v {
		case request.WooV3:
			return v
		case request.WooV2:
			best = v
		case request.WooV1:
			if best == request.WooNone {
				best = v
			}
		}
	}
	return best
}
