package database

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"sixthsoul_bff/checkout"
	"sixthsoul_bff/model"
)

// SeedData ghi bảng phí mặc định nếu chưa có; lần đồng bộ đầu tiên sẽ ghi đè
func SeedData(db *gorm.DB) {
	table := checkout.DefaultFeeTable()
	for _, method := range model.ShippingMethods {
		row := model.ShippingFeeConfig{
			Method:                method,
			Fee:                   table.Fees[method],
			FreeShippingThreshold: table.FreeShippingThreshold,
			Active:                true,
		}
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.ShippingFeeConfig{Method: method}).FirstOrCreate(&row).Error; err != nil {
			log.Errorf("failed to seed shipping fee config %s: %v", method, err)
		}
	}
}
