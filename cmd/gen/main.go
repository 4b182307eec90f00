package main

import (
	"dacsan/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.ProductModel{},
		model.VoucherModel{},
		model.VoucherProductModel{},
		model.UserVoucherModel{},
		model.PointsGrantModel{},
		model.DeliveryMethodModel{},
		model.OrderModel{},
		model.OrderLineModel{},
		model.OrderTimelineModel{},
		model.UserDeviceModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
