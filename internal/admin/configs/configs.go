// Package configs declares the entity configurations driving the admin
// console screens. Each config binds its remote operations to a gateway
// client and carries the transformers that normalize form input just before
// it is persisted.
package configs

import (
	"errors"

	"github.com/simp-lee/storeadmin/internal/admin"
	"github.com/simp-lee/storeadmin/internal/gateway"
)

// EntityScreen pairs an entity config with the console route slug and the
// collection endpoint its loader fetches.
type EntityScreen struct {
	Slug     string
	Config   *admin.EntityConfig
	Endpoint string
}

// All returns every entity config bound to the given client, in the order
// the console's navigation lists them.
func All(client *gateway.Client) []EntityScreen {
	return []EntityScreen{
		{Slug: "products", Config: Product(client), Endpoint: "/products"},
		{Slug: "users", Config: User(client), Endpoint: "/admin/users"},
		{Slug: "orders", Config: Order(client), Endpoint: "/orders"},
		{Slug: "discounts", Config: Discount(client), Endpoint: "/discount"},
	}
}

// wrapErr normalizes a gateway failure into the error text the controller
// surfaces verbatim: the backend's message when one was sent, else the
// failure's own text, else the given fallback.
func wrapErr(err error, fallback string) error {
	var apiErr *gateway.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
	case err != nil && err.Error() != "":
		return err
	}
	return errors.New(fallback)
}
