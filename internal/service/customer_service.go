package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
)

// CustomerService handles customer profile operations.
type CustomerService struct {
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
}

// NewCustomerService creates a new CustomerService with the provided repository dependencies.
func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreateCustomer registers a new customer.
func (s *CustomerService) CreateCustomer(fullName, phone, address string, now time.Time) (model.Customer, error) {
	customer := model.Customer{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Phone:     phone,
		Address:   address,
		Products:  []model.Product{},
		CreatedAt: now,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// GetAllCustomers retrieves every customer with their products and installments.
func (s *CustomerService) GetAllCustomers() ([]model.Customer, error) {
	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		products, err := s.productRepo.GetByCustomerID(customers[i].ID)
		if err != nil {
			return nil, err
		}
		customers[i].Products = products
	}
	return customers, nil
}

// GetCustomer retrieves one customer with their products and installments.
func (s *CustomerService) GetCustomer(customerID string) (model.Customer, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return model.Customer{}, err
	}
	products, err := s.productRepo.GetByCustomerID(customerID)
	if err != nil {
		return model.Customer{}, err
	}
	customer.Products = products
	return customer, nil
}

// UpdateCustomer rewrites a customer's profile fields.
func (s *CustomerService) UpdateCustomer(customerID, fullName, phone, address string) (model.Customer, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return model.Customer{}, err
	}

	customer.FullName = fullName
	customer.Phone = phone
	customer.Address = address
	if err := s.customerRepo.Update(customer); err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer; products and installments cascade.
func (s *CustomerService) DeleteCustomer(customerID string) error {
	return s.customerRepo.Delete(customerID)
}
