package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
	"github.com/davancensm/Case36-TercerEntrega/internal/repository"
)

type broadcastRecord struct {
	event string
	data  any
}

type fakeHub struct {
	m    sync.Mutex
	sent []broadcastRecord
}

func (h *fakeHub) Broadcast(event string, data any) {
	h.m.Lock()
	defer h.m.Unlock()
	h.sent = append(h.sent, broadcastRecord{event: event, data: data})
}

func (h *fakeHub) broadcasts() []broadcastRecord {
	h.m.Lock()
	defer h.m.Unlock()
	return append([]broadcastRecord(nil), h.sent...)
}

type fakeConn struct {
	m    sync.Mutex
	sent []broadcastRecord
}

func (c *fakeConn) Emit(event string, data any) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.sent = append(c.sent, broadcastRecord{event: event, data: data})
	return nil
}

func (c *fakeConn) emits() []broadcastRecord {
	c.m.Lock()
	defer c.m.Unlock()
	return append([]broadcastRecord(nil), c.sent...)
}

type fakeCarts struct {
	m      sync.Mutex
	carts  map[string][]int64
	nextID int
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{carts: make(map[string][]int64)}
}

func (f *fakeCarts) Create(context.Context) (*domain.Cart, error) {
	f.m.Lock()
	defer f.m.Unlock()
	f.nextID++
	id := fmt.Sprintf("cart-%d", f.nextID)
	f.carts[id] = []int64{}
	return &domain.Cart{ID: id, Items: []domain.CartItem{}}, nil
}

func (f *fakeCarts) Get(_ context.Context, cartID string) (*domain.Cart, error) {
	f.m.Lock()
	defer f.m.Unlock()
	ids, ok := f.carts[cartID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cart := &domain.Cart{ID: cartID}
	for _, id := range ids {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: id})
	}
	return cart, nil
}

func (f *fakeCarts) AddProduct(_ context.Context, cartID string, productID int64) error {
	f.m.Lock()
	defer f.m.Unlock()
	ids, ok := f.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	f.carts[cartID] = append(ids, productID)
	return nil
}

func (f *fakeCarts) Drain(_ context.Context, cartID string) {
	f.m.Lock()
	defer f.m.Unlock()
	f.carts[cartID] = []int64{}
}

func (f *fakeCarts) items(cartID string) []int64 {
	f.m.Lock()
	defer f.m.Unlock()
	return append([]int64(nil), f.carts[cartID]...)
}

type fakeCatalog struct {
	products map[int64]*domain.Product
}

func (f *fakeCatalog) GetAllProducts(context.Context) ([]*domain.Product, error) {
	all := make([]*domain.Product, 0, len(f.products))
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return p, nil
}

type fakeNotifier struct {
	m      sync.Mutex
	orders []domain.Order
}

func (f *fakeNotifier) OrderPlaced(order domain.Order) {
	f.m.Lock()
	defer f.m.Unlock()
	f.orders = append(f.orders, order)
}

func (f *fakeNotifier) placed() []domain.Order {
	f.m.Lock()
	defer f.m.Unlock()
	return append([]domain.Order(nil), f.orders...)
}

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func setupCoordinator() (*Coordinator, *fakeHub, *fakeCarts, *fakeNotifier) {
	hub := &fakeHub{}
	carts := newFakeCarts()
	cat := &fakeCatalog{products: map[int64]*domain.Product{
		1: {ID: 1, Name: "Laptop", Price: 1299.99},
		2: {ID: 2, Name: "Mouse", Price: 29.99},
		3: {ID: 3, Name: "Keyboard", Price: 89.99},
	}}
	notifier := &fakeNotifier{}
	coord := NewCoordinator(hub, carts, cat, notifier, silentLogger())
	return coord, hub, carts, notifier
}

func rawEvent(t *testing.T, event string, data any) Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return Envelope{Event: event, Data: raw}
}

func TestConnected_BroadcastsCatalog(t *testing.T) {
	coord, hub, _, _ := setupCoordinator()

	coord.Connected(context.Background())

	broadcasts := hub.broadcasts()
	require.Len(t, broadcasts, 1)
	assert.Equal(t, EventProducts, broadcasts[0].event)
	products, ok := broadcasts[0].data.([]*domain.Product)
	require.True(t, ok)
	assert.Len(t, products, 3)
}

func TestCreateCart_BroadcastsSameIDToEveryone(t *testing.T) {
	coord, hub, _, _ := setupCoordinator()

	// Socket A creates a cart; socket B only listens.
	sessionA := coord.NewSession(&fakeConn{})
	coord.NewSession(&fakeConn{})

	sessionA.Handle(context.Background(), Envelope{Event: EventCreateCart})

	broadcasts := hub.broadcasts()
	require.Len(t, broadcasts, 1)
	assert.Equal(t, EventCartCreated, broadcasts[0].event)

	payload, ok := broadcasts[0].data.(map[string]any)
	require.True(t, ok)
	cart, ok := payload["cart"].(*domain.Cart)
	require.True(t, ok)
	assert.Equal(t, sessionA.activeCartID, cart.ID, "every listener sees the creator's cart id")
}

func TestAddProduct_EmitsRawIDsThenResolvedProducts(t *testing.T) {
	coord, _, _, _ := setupCoordinator()
	conn := &fakeConn{}
	session := coord.NewSession(conn)

	session.Handle(context.Background(), Envelope{Event: EventCreateCart})
	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, 1))
	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, 3))

	emits := conn.emits()
	require.Len(t, emits, 4, "each add emits refreshCart twice")

	// Second add: raw ids first, resolved products second, stored order.
	assert.Equal(t, EventRefreshCart, emits[2].event)
	assert.Equal(t, []int64{1, 3}, emits[2].data)

	assert.Equal(t, EventRefreshCart, emits[3].event)
	resolved, ok := emits[3].data.([]*domain.Product)
	require.True(t, ok)
	require.Len(t, resolved, 2)
	assert.Equal(t, "Laptop", resolved[0].Name)
	assert.Equal(t, "Keyboard", resolved[1].Name)
}

func TestAddProduct_StringIDAccepted(t *testing.T) {
	coord, _, carts, _ := setupCoordinator()
	conn := &fakeConn{}
	session := coord.NewSession(conn)

	session.Handle(context.Background(), Envelope{Event: EventCreateCart})
	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, "2"))

	assert.Equal(t, []int64{2}, carts.items(session.activeCartID))
}

func TestAddProduct_WithoutCartIsIgnored(t *testing.T) {
	coord, _, _, _ := setupCoordinator()
	conn := &fakeConn{}
	session := coord.NewSession(conn)

	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, 1))

	assert.Empty(t, conn.emits())
}

func TestSecondCreateCart_ReplacesActiveCart(t *testing.T) {
	coord, hub, carts, _ := setupCoordinator()
	conn := &fakeConn{}
	session := coord.NewSession(conn)

	session.Handle(context.Background(), Envelope{Event: EventCreateCart})
	firstCartID := session.activeCartID

	session.Handle(context.Background(), Envelope{Event: EventCreateCart})
	require.NotEqual(t, firstCartID, session.activeCartID)

	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, 1))

	assert.Empty(t, carts.items(firstCartID), "adds go to the newest cart only")
	assert.Equal(t, []int64{1}, carts.items(session.activeCartID))
	assert.Len(t, hub.broadcasts(), 2, "each createCart still broadcasts")
}

func TestFinishPurchase_NotifiesThenDrains(t *testing.T) {
	coord, _, carts, notifier := setupCoordinator()
	conn := &fakeConn{}
	session := coord.NewSession(conn)

	session.Handle(context.Background(), Envelope{Event: EventCreateCart})
	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, 1))
	session.Handle(context.Background(), rawEvent(t, EventAddProductToCart, 2))

	order := domain.Order{
		Items: []domain.OrderLine{
			{ID: 1, Name: "Laptop", Price: 1299.99},
			{ID: 2, Name: "Mouse", Price: 29.99},
		},
		Contact: domain.OrderContact{User: "bob", Email: "b@x.com", Phone: "+1555"},
	}
	session.Handle(context.Background(), rawEvent(t, EventFinishPurchase, order))

	placed := notifier.placed()
	require.Len(t, placed, 1)
	assert.Equal(t, "bob", placed[0].Contact.User)
	assert.Len(t, placed[0].Items, 2)

	assert.Empty(t, carts.items(session.activeCartID), "cart must be drained after checkout")
}

func TestFinishPurchase_WithoutCartIsIgnored(t *testing.T) {
	coord, _, _, notifier := setupCoordinator()
	session := coord.NewSession(&fakeConn{})

	session.Handle(context.Background(), rawEvent(t, EventFinishPurchase, domain.Order{}))

	assert.Empty(t, notifier.placed())
}
