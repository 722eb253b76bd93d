package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ramani-storefront/models"
	"ramani-storefront/store"
)

type fakeProducts struct {
	byID     map[primitive.ObjectID]models.Product
	inserted []models.Product
	lastFind bson.M
	lastPage store.Page
	pipeline mongo.Pipeline
	result   []models.Product
	total    int64
	distinct map[string][]string
}

func newFakeProducts(products ...models.Product) *fakeProducts {
	f := &fakeProducts{byID: map[primitive.ObjectID]models.Product{}, distinct: map[string][]string{}}
	for _, p := range products {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Find(_ context.Context, filter bson.M, page store.Page) ([]models.Product, error) {
	f.lastFind, f.lastPage = filter, page
	if f.result != nil {
		return f.result, nil
	}
	out := []models.Product{}
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

// Aggregate runs the $addFields, $sort, $skip and $limit stages over the
// stored products. $match is ignored.
func (f *fakeProducts) Aggregate(_ context.Context, pipeline mongo.Pipeline) ([]models.Product, error) {
	f.pipeline = pipeline
	if f.result != nil {
		return f.result, nil
	}
	rows := []models.Product{}
	for _, p := range f.byID {
		rows = append(rows, p)
	}
	for _, stage := range pipeline {
		switch arg := stage[0].Value; stage[0].Key {
		case "$addFields":
			expr := arg.(bson.M)["discountPercent"]
			for i := range rows {
				rows[i].DiscountPercent = evalNumber(expr, rows[i])
			}
		case "$sort":
			dir := arg.(bson.D)[0].Value.(int)
			sort.SliceStable(rows, func(i, j int) bool {
				a, b := rows[i].DiscountPercent, rows[j].DiscountPercent
				if a == b {
					return rows[i].ID.Hex() < rows[j].ID.Hex()
				}
				if dir < 0 {
					return a > b
				}
				return a < b
			})
		case "$skip":
			n := int(arg.(int64))
			if n > len(rows) {
				n = len(rows)
			}
			rows = rows[n:]
		case "$limit":
			if n := int(arg.(int64)); n < len(rows) {
				rows = rows[:n]
			}
		}
	}
	return rows, nil
}

// evalNumber interprets the arithmetic subset of aggregation expressions the
// catalog pipelines use.
func evalNumber(expr interface{}, p models.Product) float64 {
	switch e := expr.(type) {
	case int:
		return float64(e)
	case int64:
		return float64(e)
	case float64:
		return e
	case string:
		switch e {
		case "$price":
			return p.Price
		case "$originalPrice":
			return p.OriginalPrice
		}
	case bson.M:
		for op, raw := range e {
			args := raw.(bson.A)
			switch op {
			case "$cond":
				if evalBool(args[0], p) {
					return evalNumber(args[1], p)
				}
				return evalNumber(args[2], p)
			case "$multiply":
				return evalNumber(args[0], p) * evalNumber(args[1], p)
			case "$divide":
				return evalNumber(args[0], p) / evalNumber(args[1], p)
			case "$subtract":
				return evalNumber(args[0], p) - evalNumber(args[1], p)
			}
		}
	}
	panic(fmt.Sprintf("unsupported numeric expression %v", expr))
}

func evalBool(expr interface{}, p models.Product) bool {
	for op, raw := range expr.(bson.M) {
		args := raw.(bson.A)
		switch op {
		case "$and":
			for _, arg := range args {
				if !evalBool(arg, p) {
					return false
				}
			}
			return true
		case "$gt":
			return evalNumber(args[0], p) > evalNumber(args[1], p)
		}
	}
	panic(fmt.Sprintf("unsupported boolean expression %v", expr))
}

func (f *fakeProducts) Count(_ context.Context, filter bson.M) (int64, error) {
	return f.total, nil
}

func (f *fakeProducts) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProducts) GetMany(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Distinct(_ context.Context, field string) ([]string, error) {
	return f.distinct[field], nil
}

func (f *fakeProducts) Insert(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProducts) InsertMany(_ context.Context, products []models.Product) error {
	f.inserted = append(f.inserted, products...)
	return nil
}

func (f *fakeProducts) Replace(_ context.Context, p *models.Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return store.ErrNotFound
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCarts struct {
	byUser map[primitive.ObjectID]models.Cart
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{byUser: map[primitive.ObjectID]models.Cart{}}
}

func (f *fakeCarts) Get(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.Items = append([]models.CartItem(nil), c.Items...)
	return &c, nil
}

func (f *fakeCarts) Save(_ context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	c := *cart
	c.Items = append([]models.CartItem(nil), cart.Items...)
	f.byUser[cart.UserID] = c
	return nil
}

func (f *fakeCarts) Clear(_ context.Context, userID primitive.ObjectID) error {
	if c, ok := f.byUser[userID]; ok {
		c.Items = []models.CartItem{}
		f.byUser[userID] = c
	}
	return nil
}

type fakeWishlists struct {
	byUser map[primitive.ObjectID]models.Wishlist
}

func newFakeWishlists() *fakeWishlists {
	return &fakeWishlists{byUser: map[primitive.ObjectID]models.Wishlist{}}
}

func (f *fakeWishlists) Get(_ context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	w, ok := f.byUser[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &w, nil
}

func (f *fakeWishlists) AddProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	w := f.byUser[userID]
	w.UserID = userID
	if !w.Contains(productID) {
		w.Products = append(w.Products, productID)
	}
	f.byUser[userID] = w
	return nil
}

func (f *fakeWishlists) RemoveProduct(_ context.Context, userID, productID primitive.ObjectID) error {
	w, ok := f.byUser[userID]
	if !ok {
		return store.ErrNotFound
	}
	kept := []primitive.ObjectID{}
	for _, id := range w.Products {
		if id != productID {
			kept = append(kept, id)
		}
	}
	w.Products = kept
	f.byUser[userID] = w
	return nil
}

type fakeUsers struct {
	byEmail map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]models.User{}}
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return store.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.byEmail {
		out = append(out, u)
	}
	return out, nil
}

type fakeOTPs struct {
	byPhone map[string]models.OTP
}

func newFakeOTPs() *fakeOTPs {
	return &fakeOTPs{byPhone: map[string]models.OTP{}}
}

func (f *fakeOTPs) Upsert(_ context.Context, otp models.OTP) error {
	otp.Verified = false
	f.byPhone[otp.Phone] = otp
	return nil
}

func (f *fakeOTPs) Get(_ context.Context, phone string) (*models.OTP, error) {
	otp, ok := f.byPhone[phone]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &otp, nil
}

func (f *fakeOTPs) MarkVerified(_ context.Context, phone string) error {
	otp := f.byPhone[phone]
	otp.Verified = true
	f.byPhone[phone] = otp
	return nil
}

func (f *fakeOTPs) Delete(_ context.Context, phone string) error {
	delete(f.byPhone, phone)
	return nil
}

type fakeAdmins struct {
	byEmail map[string]models.AdminUser
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byEmail: map[string]models.AdminUser{}}
}

func (f *fakeAdmins) Insert(_ context.Context, a *models.AdminUser) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return store.ErrDuplicate
	}
	a.ID = primitive.NewObjectID()
	f.byEmail[a.Email] = *a
	return nil
}

func (f *fakeAdmins) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAdmins) update(id primitive.ObjectID, fn func(*models.AdminUser)) {
	for email, a := range f.byEmail {
		if a.ID == id {
			fn(&a)
			f.byEmail[email] = a
		}
	}
}

func (f *fakeAdmins) SetOTP(_ context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	f.update(id, func(a *models.AdminUser) {
		a.OTP, a.OTPExpiresAt = code, &expiresAt
	})
	return nil
}

func (f *fakeAdmins) ClearOTP(_ context.Context, id primitive.ObjectID) error {
	f.update(id, func(a *models.AdminUser) {
		a.OTP, a.OTPExpiresAt = "", nil
	})
	return nil
}

type fakeOrders struct {
	orders []models.Order
}

func (f *fakeOrders) Insert(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(_ context.Context) ([]models.Order, error) {
	return append([]models.Order{}, f.orders...), nil
}

func (f *fakeOrders) GetForUser(_ context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id && o.UserID == userID {
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeAddresses struct {
	addresses []models.Address
}

func (f *fakeAddresses) List(_ context.Context, userID primitive.ObjectID) ([]models.Address, error) {
	out := []models.Address{}
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAddresses) Get(_ context.Context, id, userID primitive.ObjectID) (*models.Address, error) {
	for _, a := range f.addresses {
		if a.ID == id && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAddresses) Count(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	list, _ := f.List(ctx, userID)
	return int64(len(list)), nil
}

func (f *fakeAddresses) Insert(_ context.Context, a *models.Address) error {
	a.ID = primitive.NewObjectID()
	f.addresses = append(f.addresses, *a)
	return nil
}

func (f *fakeAddresses) Replace(_ context.Context, a *models.Address) error {
	for i := range f.addresses {
		if f.addresses[i].ID == a.ID && f.addresses[i].UserID == a.UserID {
			f.addresses[i] = *a
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeAddresses) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range f.addresses {
		if f.addresses[i].ID == id && f.addresses[i].UserID == userID {
			f.addresses = append(f.addresses[:i], f.addresses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeAddresses) ClearDefault(_ context.Context, userID primitive.ObjectID) error {
	for i := range f.addresses {
		if f.addresses[i].UserID == userID {
			f.addresses[i].IsDefault = false
		}
	}
	return nil
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]models.GuestSession
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]models.GuestSession{}}
}

func (f *fakeSessions) Get(_ context.Context, id string) (*models.GuestSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Cart = append([]models.GuestCartItem(nil), s.Cart...)
	s.Wishlist = append([]string(nil), s.Wishlist...)
	return &s, nil
}

func (f *fakeSessions) Set(_ context.Context, session *models.GuestSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID] = *session
	return nil
}

func (f *fakeSessions) Clear(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

type recordingSender struct {
	phone, code string
}

func (r *recordingSender) Send(phone, code string) error {
	r.phone, r.code = phone, code
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
