package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"gorm.io/gorm"
)

// RequireStore resolves the authenticated owner's store and stashes both ids
// in locals so downstream handlers don't repeat the lookup.
func RequireStore(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var store models.Store
		if err := db.Select("id").Where("user_id = ?", userID).First(&store).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "store not found",
			})
		}

		c.Locals("owner_id", userID)
		c.Locals("store_id", store.ID)
		return c.Next()
	}
}

func StoreID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("store_id").(uuid.UUID)
	return id
}

func OwnerID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("owner_id").(uuid.UUID)
	return id
}
