package listing

import (
	"context"
	"fmt"

	"sixthsoul_bff/client"
	"sixthsoul_bff/helper"
	"sixthsoul_bff/model"
)

var boolValues = []string{"true", "false"}

var Users = &Resource[model.User]{
	Name: "users",
	Path: client.PathAdminUsers,
	Fields: []FieldSpec{
		Text("search"),
		Enum("role", model.Strings(model.Roles)),
		Enum("active", boolValues),
	},
	Actions: map[string]ActionFunc[model.User]{
		"setActive": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.User], id int64, p model.UpdateUserStatusInput) (Delta[model.User], error) {
			u, err := api.UpdateUserStatus(ctx, id, p.Active)
			return Patch(u), err
		}),
		"setRole": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.User], id int64, p model.UpdateUserRoleInput) (Delta[model.User], error) {
			u, err := api.UpdateUserRole(ctx, id, p.Role)
			return Patch(u), err
		}),
	},
}

var Vouchers = &Resource[model.Voucher]{
	Name: "vouchers",
	Path: client.PathAdminVouchers,
	Fields: []FieldSpec{
		Text("search"),
		Enum("type", model.Strings(model.VoucherTypes)),
		Enum("active", boolValues),
	},
	Actions: map[string]ActionFunc[model.Voucher]{
		// tạo mới có thể rơi ra ngoài bộ lọc hiện tại nên tải lại cả trang
		"create": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.Voucher], _ int64, p model.VoucherInput) (Delta[model.Voucher], error) {
			_, err := api.CreateVoucher(ctx, p)
			return Refetch[model.Voucher](), err
		}),
		"update": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.Voucher], id int64, p model.VoucherInput) (Delta[model.Voucher], error) {
			v, err := api.UpdateVoucher(ctx, id, p)
			return Patch(v), err
		}),
		"setActive": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.Voucher], id int64, p model.UpdateActiveInput) (Delta[model.Voucher], error) {
			v, err := api.SetVoucherActive(ctx, id, p.Active)
			return Patch(v), err
		}),
		"delete": func(ctx context.Context, api *client.Client, c *Controller[model.Voucher], a Action) (any, error) {
			if !a.Confirm {
				return nil, ErrConfirmationRequired
			}
			err := c.Mutate(ctx, func(ctx context.Context) (Delta[model.Voucher], error) {
				return Remove[model.Voucher](a.ID), api.DeleteVoucher(ctx, a.ID)
			})
			if err != nil {
				return nil, err
			}
			return DeltaRemove.String(), nil
		},
	},
}

var Collections = &Resource[model.Collection]{
	Name: "collections",
	Path: client.PathAdminCollections,
	Fields: []FieldSpec{
		Text("search"),
		Enum("visible", boolValues),
	},
	Actions: map[string]ActionFunc[model.Collection]{
		"setVisibility": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.Collection], id int64, p model.UpdateVisibilityInput) (Delta[model.Collection], error) {
			col, err := api.SetCollectionVisibility(ctx, id, p.Visible)
			return Patch(col), err
		}),
		"create": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.Collection], _ int64, p model.CollectionInput) (Delta[model.Collection], error) {
			input, err := WithCollectionSlug(ctx, api, p)
			if err != nil {
				return Delta[model.Collection]{}, err
			}
			_, err = api.CreateCollection(ctx, input)
			return Refetch[model.Collection](), err
		}),
		"update": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.Collection], id int64, p model.CollectionInput) (Delta[model.Collection], error) {
			col, err := api.UpdateCollection(ctx, id, p)
			return Patch(col), err
		}),
	},
}

// WithCollectionSlug sinh slug duy nhất từ tên khi người dùng để trống
func WithCollectionSlug(ctx context.Context, api *client.Client, input model.CollectionInput) (model.CollectionInput, error) {
	if input.Slug != "" {
		return input, nil
	}
	s, err := helper.GenerateUniqueSlug(ctx, input.Name, api.SlugTaken)
	if err != nil {
		return input, err
	}
	input.Slug = s
	return input, nil
}

var Returns = &Resource[model.ReturnRequest]{
	Name: "returns",
	Path: client.PathAdminReturns,
	Fields: []FieldSpec{
		Enum("status", model.Strings(model.ReturnStatuses)),
		Text("orderNumber"),
		Date("from"),
		Date("to"),
	},
	Actions: map[string]ActionFunc[model.ReturnRequest]{
		"setStatus": mutation(func(ctx context.Context, api *client.Client, c *Controller[model.ReturnRequest], id int64, p model.UpdateReturnStatusInput) (Delta[model.ReturnRequest], error) {
			if current, ok := c.Find(id); ok && !current.Status.CanTransitionTo(p.Status) {
				return Delta[model.ReturnRequest]{}, fmt.Errorf("%w: %s → %s", ErrTransition, current.Status, p.Status)
			}
			r, err := api.UpdateReturnStatus(ctx, id, p)
			return Patch(r), err
		}),
		// bulkStatus: ids rỗng thì dùng các dòng đang chọn, không có dòng nào thì báo lỗi dữ liệu
		"bulkStatus": func(ctx context.Context, api *client.Client, c *Controller[model.ReturnRequest], a Action) (any, error) {
			var input model.BulkReturnStatusInput
			if err := unmarshalPayload(a.Payload, &input); err != nil {
				return nil, err
			}
			input.IDs = a.IDs
			if len(input.IDs) == 0 {
				input.IDs = c.Selected()
			}
			input.Confirm = a.Confirm
			if err := payloadValidator.Struct(input); err != nil {
				return nil, err
			}
			update := model.UpdateReturnStatusInput{Status: input.Status, Note: input.Note}
			return c.Bulk(ctx, input.IDs, input.Confirm, func(ctx context.Context, id int64) error {
				_, err := api.UpdateReturnStatus(ctx, id, update)
				return err
			})
		},
	},
}

var LoginActivities = &Resource[model.LoginActivity]{
	Name: "login-activities",
	Path: client.PathAdminLoginActivity,
	Fields: []FieldSpec{
		Number("userId"),
		Enum("success", boolValues),
		Date("from"),
		Date("to"),
	},
}

var LoyaltyPoints = &Resource[model.LoyaltyPoint]{
	Name: "loyalty-points",
	Path: client.PathAdminLoyaltyPoints,
	Fields: []FieldSpec{
		Number("userId"),
		Enum("tier", model.Strings(model.Tiers)),
	},
	Actions: map[string]ActionFunc[model.LoyaltyPoint]{
		// id của thao tác là userId
		"adjust": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.LoyaltyPoint], userID int64, p model.AdjustPointsInput) (Delta[model.LoyaltyPoint], error) {
			lp, err := api.AdjustLoyaltyPoints(ctx, userID, p)
			return Patch(lp), err
		}),
	},
}

var ShippingFeeConfigs = &Resource[model.ShippingFeeConfig]{
	Name:   "shipping-fee-configs",
	Path:   client.PathAdminShippingConfig,
	Fields: []FieldSpec{Enum("method", model.Strings(model.ShippingMethods))},
	Actions: map[string]ActionFunc[model.ShippingFeeConfig]{
		"update": mutation(func(ctx context.Context, api *client.Client, _ *Controller[model.ShippingFeeConfig], id int64, p model.UpdateShippingFeeConfigInput) (Delta[model.ShippingFeeConfig], error) {
			cfg, err := api.UpdateShippingFeeConfig(ctx, id, p)
			return Patch(cfg), err
		}),
	},
}

// Registry tra tài nguyên theo tên trên URL
var Registry = map[string]Definition{
	Users.Name:              Users,
	Vouchers.Name:           Vouchers,
	Collections.Name:        Collections,
	Returns.Name:            Returns,
	LoginActivities.Name:    LoginActivities,
	LoyaltyPoints.Name:      LoyaltyPoints,
	ShippingFeeConfigs.Name: ShippingFeeConfigs,
}
