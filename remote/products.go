package remote

import (
	"net/http"
	"strconv"

	"github.com/storeops/networking"
	"github.com/storeops/networking/request"
)

// Product is a store product.
type Product struct {
	SiteID        int64             `json:"-"`
	ProductID     int64             `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Permalink     string            `json:"permalink"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	SKU           string            `json:"sku"`
	Price         string            `json:"price"`
	RegularPrice  string            `json:"regular_price"`
	OnSale        bool              `json:"on_sale"`
	StockQuantity *int64            `json:"stock_quantity"`
	Categories    []ProductCategory `json:"categories"`
}

// ProductCategory is a category a product belongs to.
type ProductCategory struct {
	CategoryID int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

// Default paging used by LoadAllProducts callers.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 25
)

// ProductsRemote reads products through the Jetpack tunnel.
type ProductsRemote struct {
	*Remote
}

// NewProductsRemote creates a ProductsRemote using network.
func NewProductsRemote(network networking.Network) *ProductsRemote {
	return &ProductsRemote{Remote: New(network)}
}

// LoadAllProducts fetches one page of the products of siteID.
func (r *ProductsRemote) LoadAllProducts(siteID int64, page, perPage int, completion func([]Product, error)) {
	req := request.Jetpack{
		WooAPIVersion: request.WooV3,
		Method:        http.MethodGet,
		SiteID:        siteID,
		Path:          "products",
		Parameters: request.Parameters{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(perPage),
		},
	}
	Enqueue[[]Product](r.Remote, req, MapperFunc[[]Product](func(data []byte) ([]Product, error) {
		products, err := unwrap[[]Product](data)
		if err != nil {
			return nil, err
		}
		for i := range products {
			products[i].SiteID = siteID
		}
		return products, nil
	}), completion)
}

// LoadProduct fetches a single product.
func (r *ProductsRemote) LoadProduct(siteID, productID int64, completion func(Product, error)) {
	req := request.Jetpack{
		WooAPIVersion: request.WooV3,
		Method:        http.MethodGet,
		SiteID:        siteID,
		Path:          "products/" + strconv.FormatInt(productID, 10),
	}
	Enqueue[Product](r.Remote, req, MapperFunc[Product](func(data []byte) (Product, error) {
		product, err := unwrap[Product](data)
		if err != nil {
			return Product{}, err
		}
		product.SiteID = siteID
		return product, nil
	}), completion)
}
