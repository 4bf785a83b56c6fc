package shopify

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Catalog types are read-only inputs to the cart: the product and variant
// identifiers, prices, titles and images that feed AddItem.

type Image struct {
	URL     string
	AltText string
}

type ProductVariant struct {
	ID               string
	Title            string
	Price            domain.Money
	AvailableForSale bool
	SelectedOptions  []domain.SelectedOption
}

type ProductOption struct {
	Name   string
	Values []string
}

type Product struct {
	ID          string
	Title       string
	Handle      string
	Description string
	MinPrice    domain.Money
	Images      []Image
	Variants    []ProductVariant
	Options     []ProductOption
}

type ProductPage struct {
	Products    []Product
	HasNextPage bool
	EndCursor   string
}

type Collection struct {
	ID          string
	Title       string
	Description string
	Handle      string
	Image       *Image
}

const productsQuery = `
query GetProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      node {
        id
        title
        handle
        description
        priceRange {
          minVariantPrice {
            amount
            currencyCode
          }
        }
        images(first: 3) {
          edges {
            node {
              url
              altText
            }
          }
        }
        variants(first: 20) {
          edges {
            node {
              id
              title
              availableForSale
              price {
                amount
                currencyCode
              }
              selectedOptions {
                name
                value
              }
            }
          }
        }
        options {
          name
          values
        }
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

const productByHandleQuery = `
query GetProductByHandle($handle: String!) {
  productByHandle(handle: $handle) {
    id
    title
    handle
    description
    priceRange {
      minVariantPrice {
        amount
        currencyCode
      }
    }
    images(first: 10) {
      edges {
        node {
          url
          altText
        }
      }
    }
    variants(first: 20) {
      edges {
        node {
          id
          title
          availableForSale
          price {
            amount
            currencyCode
          }
          selectedOptions {
            name
            value
          }
        }
      }
    }
    options {
      name
      values
    }
  }
}`

const collectionsQuery = `
query GetCollections($first: Int!) {
  collections(first: $first) {
    edges {
      node {
        id
        title
        description
        handle
        image {
          url
          altText
        }
      }
    }
  }
}`

func (c *Client) Products(ctx context.Context, first int, after string) (ProductPage, error) {
	variables := map[string]any{"first": first}
	if after != "" {
		variables["after"] = after
	}

	var out struct {
		Products struct {
			Edges []struct {
				Node wireProduct `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"products"`
	}

	if err := c.do(ctx, productsQuery, variables, &out); err != nil {
		return ProductPage{}, fmt.Errorf("do: %w", err)
	}

	page := ProductPage{
		HasNextPage: out.Products.PageInfo.HasNextPage,
		EndCursor:   out.Products.PageInfo.EndCursor,
	}

	for _, edge := range out.Products.Edges {
		product, err := mapProduct(edge.Node)
		if err != nil {
			return ProductPage{}, fmt.Errorf("mapProduct: %w", err)
		}
		page.Products = append(page.Products, product)
	}

	return page, nil
}

// ProductByHandle returns found=false when the handle is unknown.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (Product, bool, error) {
	if handle == "" {
		return Product{}, false, fmt.Errorf("handle is empty")
	}

	var out struct {
		ProductByHandle *wireProduct `json:"productByHandle"`
	}

	if err := c.do(ctx, productByHandleQuery, map[string]any{"handle": handle}, &out); err != nil {
		return Product{}, false, fmt.Errorf("do: %w", err)
	}

	if out.ProductByHandle == nil {
		return Product{}, false, nil
	}

	product, err := mapProduct(*out.ProductByHandle)
	if err != nil {
		return Product{}, false, fmt.Errorf("mapProduct: %w", err)
	}

	return product, true, nil
}

func (c *Client) Collections(ctx context.Context, first int) ([]Collection, error) {
	var out struct {
		Collections struct {
			Edges []struct {
				Node struct {
					ID          string `json:"id"`
					Title       string `json:"title"`
					Description string `json:"description"`
					Handle      string `json:"handle"`
					Image       *struct {
						URL     string `json:"url"`
						AltText string `json:"altText"`
					} `json:"image"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"collections"`
	}

	if err := c.do(ctx, collectionsQuery, map[string]any{"first": first}, &out); err != nil {
		return nil, fmt.Errorf("do: %w", err)
	}

	var collections []Collection
	for _, edge := range out.Collections.Edges {
		collection := Collection{
			ID:          edge.Node.ID,
			Title:       edge.Node.Title,
			Description: edge.Node.Description,
			Handle:      edge.Node.Handle,
		}
		if edge.Node.Image != nil {
			collection.Image = &Image{
				URL:     edge.Node.Image.URL,
				AltText: edge.Node.Image.AltText,
			}
		}
		collections = append(collections, collection)
	}

	return collections, nil
}

type wireMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type wireProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	PriceRange  struct {
		MinVariantPrice wireMoney `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images struct {
		Edges []struct {
			Node struct {
				URL     string `json:"url"`
				AltText string `json:"altText"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node struct {
				ID               string    `json:"id"`
				Title            string    `json:"title"`
				AvailableForSale bool      `json:"availableForSale"`
				Price            wireMoney `json:"price"`
				SelectedOptions  []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"selectedOptions"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	Options []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
}

func mapMoney(m wireMoney) (domain.Money, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", m.Amount, err)
	}

	parsedCurrency, err := currency.ParseISO(m.CurrencyCode)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", m.CurrencyCode, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func mapProduct(wire wireProduct) (Product, error) {
	minPrice, err := mapMoney(wire.PriceRange.MinVariantPrice)
	if err != nil {
		return Product{}, fmt.Errorf("mapMoney: %w", err)
	}

	product := Product{
		ID:          wire.ID,
		Title:       wire.Title,
		Handle:      wire.Handle,
		Description: wire.Description,
		MinPrice:    minPrice,
	}

	for _, edge := range wire.Images.Edges {
		product.Images = append(product.Images, Image{
			URL:     edge.Node.URL,
			AltText: edge.Node.AltText,
		})
	}

	for _, edge := range wire.Variants.Edges {
		price, err := mapMoney(edge.Node.Price)
		if err != nil {
			return Product{}, fmt.Errorf("mapMoney: %w", err)
		}

		variant := ProductVariant{
			ID:               edge.Node.ID,
			Title:            edge.Node.Title,
			Price:            price,
			AvailableForSale: edge.Node.AvailableForSale,
		}
		for _, option := range edge.Node.SelectedOptions {
			variant.SelectedOptions = append(variant.SelectedOptions, domain.SelectedOption{
				Name:  option.Name,
				Value: option.Value,
			})
		}

		product.Variants = append(product.Variants, variant)
	}

	for _, option := range wire.Options {
		product.Options = append(product.Options, ProductOption{
			Name:   option.Name,
			Values: option.Values,
		})
	}

	return product, nil
}
