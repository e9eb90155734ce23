package db

import (
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed provisions branch slots 1..BranchSlots. Existing rows are left alone,
// so running it repeatedly is safe.
func Seed(conn *gorm.DB) error {
	slots := make([]models.Branch, 0, models.BranchSlots)
	for i := 1; i <= models.BranchSlots; i++ {
		slots = append(slots, models.NewBranchSlot(uint(i)))
	}
	return conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&slots).Error
}
