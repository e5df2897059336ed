package handler

import (
	"context"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// Backend is the part of apiclient.Client the handlers use.
type Backend interface {
	Login(ctx context.Context, in model.LoginRequest) (*model.AuthResult, error)
	Register(ctx context.Context, in model.RegisterRequest) error
	VerifyToken(ctx context.Context) error

	ListMovies(ctx context.Context) ([]model.Movie, error)
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	CreateMovie(ctx context.Context, in model.MovieInput) (*model.Movie, error)
	UpdateMovie(ctx context.Context, id string, in model.MovieInput) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id string) error

	ShowTimesByMovie(ctx context.Context, movieID string) ([]model.ShowTime, error)
	ListShowTimes(ctx context.Context) ([]model.ShowTime, error)
	CreateShowTime(ctx context.Context, in model.ShowTimeInput) (*model.ShowTime, error)
	UpdateShowTime(ctx context.Context, id string, in model.ShowTimeInput) (*model.ShowTime, error)
	DeleteShowTime(ctx context.Context, id string) error
	AvailableSeats(ctx context.Context, showTimeID string) ([]model.Seat, error)

	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListEmployees(ctx context.Context) ([]model.Employee, error)
	CreateEmployee(ctx context.Context, in model.EmployeeInput) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id string, in model.EmployeeInput) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	ListOrders(ctx context.Context) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	PlaceOrder(ctx context.Context, order model.PlaceOrder) (string, error)
}
