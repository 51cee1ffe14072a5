package service

import (
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(CatalogService), "*"),
	wire.Bind(new(ICatalogService), new(*CatalogService)),

	wire.Struct(new(CartService), "*"),
	wire.Bind(new(ICartService), new(*CartService)),

	wire.Struct(new(CheckoutService), "*"),
	wire.Bind(new(ICheckoutService), new(*CheckoutService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(ReportService), "*"),
	wire.Bind(new(IReportService), new(*ReportService)),

	wire.Struct(new(CategoryService), "*"),
	wire.Bind(new(ICategoryService), new(*CategoryService)),

	wire.Struct(new(ProductService), "*"),
	wire.Bind(new(IProductService), new(*ProductService)),

	wire.Struct(new(ImageService), "*"),
	wire.Bind(new(IImageService), new(*ImageService)),
	wire.Bind(new(ObjectStore), new(*oss.Client)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	NewOAuthService,
	wire.Bind(new(IOAuthService), new(*OAuthService)),

	NewOrderEvents,
)
