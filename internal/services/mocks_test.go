package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"souq/internal/models"
)

// In-memory fakes for the repository interfaces.

type fakeCartRepo struct {
	carts      map[string]*models.Cart // keyed by cart id
	byUser     map[string]string       // user id -> cart id
	nextCartID int
	failGet    error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts:  make(map[string]*models.Cart),
		byUser: make(map[string]string),
	}
}

func (f *fakeCartRepo) seed(cart *models.Cart) {
	f.carts[cart.ID] = cart
	f.byUser[cart.UserID] = cart.ID
}

func (f *fakeCartRepo) GetByUser(userID string) (*models.Cart, error) {
	cartID, ok := f.byUser[userID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	return f.carts[cartID], nil
}

func (f *fakeCartRepo) GetByID(cartID string) (*models.Cart, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	return cart, nil
}

func (f *fakeCartRepo) AddItem(userID string, item models.CartItem) (string, error) {
	cartID, ok := f.byUser[userID]
	if !ok {
		f.nextCartID++
		cartID = fmt.Sprintf("cart-%d", f.nextCartID)
		f.carts[cartID] = &models.Cart{ID: cartID, UserID: userID}
		f.byUser[userID] = cartID
	}
	cart := f.carts[cartID]
	for _, existing := range cart.Items {
		if existing.ProductID == item.ProductID {
			return "", models.ErrDuplicateCartItem
		}
	}
	cart.Items = append(cart.Items, item)
	return cartID, nil
}

func (f *fakeCartRepo) RemoveItem(userID, itemID string) (string, error) {
	cartID, ok := f.byUser[userID]
	if !ok {
		return "", models.ErrCartNotFound
	}
	cart := f.carts[cartID]
	for i, item := range cart.Items {
		if item.ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	return cartID, nil
}

func (f *fakeCartRepo) UpdateTotal(cartID string, total decimal.Decimal) error {
	if cart, ok := f.carts[cartID]; ok {
		cart.TotalPrice = total
	}
	return nil
}

func (f *fakeCartRepo) DeleteByUser(userID string) error {
	if cartID, ok := f.byUser[userID]; ok {
		delete(f.carts, cartID)
		delete(f.byUser, userID)
	}
	return nil
}

func (f *fakeCartRepo) DeleteByID(cartID string) error {
	if cart, ok := f.carts[cartID]; ok {
		delete(f.byUser, cart.UserID)
		delete(f.carts, cartID)
	}
	return nil
}

type fakeProductRepo struct {
	products           map[string]*models.Product
	unavailableCalls   [][]string
	recomputedProducts []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*models.Product)}
}

func (f *fakeProductRepo) GetByID(id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) MarkUnavailable(productIDs []string) error {
	f.unavailableCalls = append(f.unavailableCalls, productIDs)
	for _, id := range productIDs {
		if product, ok := f.products[id]; ok {
			product.Available = false
		}
	}
	return nil
}

func (f *fakeProductRepo) RecomputeRating(productID string) error {
	f.recomputedProducts = append(f.recomputedProducts, productID)
	return nil
}

type fakeOrderRepo struct {
	orders     map[string]*models.Order // keyed by session reference
	nextID     int
	createErr  error
	createHook func() // runs before the insert decision, for race simulation
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) Create(req *models.OrderCreateRequest) (*models.Order, bool, error) {
	if f.createErr != nil {
		return nil, false, f.createErr
	}
	if f.createHook != nil {
		f.createHook()
	}
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	if existing, ok := f.orders[req.SessionReference]; ok {
		return existing, false, nil
	}
	f.nextID++
	order := &models.Order{
		ID:               fmt.Sprintf("order-%d", f.nextID),
		UserID:           req.UserID,
		SessionReference: req.SessionReference,
		Items:            req.Items,
		ShippingAddress:  req.ShippingAddress,
		TotalPrice:       req.TotalPrice,
		PaidAt:           req.PaidAt,
	}
	f.orders[req.SessionReference] = order
	return order, true, nil
}

func (f *fakeOrderRepo) GetBySessionReference(reference string) (*models.Order, error) {
	order, ok := f.orders[reference]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(userID string) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type fakeUserRepo struct {
	users map[string]*models.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

type fakePaymentProvider struct {
	requests []*SessionRequest
	response *SessionResponse
	err      error
}

func (f *fakePaymentProvider) InitializeSession(req *SessionRequest) (*SessionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.response != nil {
		return f.response, nil
	}
	return &SessionResponse{
		Status:  true,
		Message: "Authorization URL created",
		Data: SessionData{
			AuthorizationURL: "https://checkout.example.com/" + req.Reference,
			AccessCode:       "access-" + req.Reference,
			Reference:        req.Reference,
		},
	}, nil
}
