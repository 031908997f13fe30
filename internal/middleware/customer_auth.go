package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CustomerID extracts the customer id from a verified storefront token.
// Owner tokens are rejected here for the same reason UserID rejects
// customer tokens.
func CustomerID(c *fiber.Ctx) (uuid.UUID, error) {
	mc, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	if t, _ := mc["type"].(string); t != "customer" {
		return uuid.Nil, errors.New("not a customer token")
	}
	sub, _ := mc["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid subject claim")
	}
	return id, nil
}

// CustomerStoreID extracts the store the customer token was issued for.
func CustomerStoreID(c *fiber.Ctx) (uuid.UUID, error) {
	mc, err := claims(c)
	if err != nil {
		return uuid.Nil, err
	}
	raw, _ := mc["store_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid store claim")
	}
	return id, nil
}
