package realtime

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
)

// CartService is what the coordinator needs from the cart side.
type CartService interface {
	Create(ctx context.Context) (*domain.Cart, error)
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddProduct(ctx context.Context, cartID string, productID int64) error
	Drain(ctx context.Context, cartID string)
}

// Catalog resolves product ids to products.
type Catalog interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// OrderNotifier fires the checkout side effects.
type OrderNotifier interface {
	OrderPlaced(order domain.Order)
}

type sender interface {
	Emit(event string, data any) error
}

type broadcaster interface {
	Broadcast(event string, data any)
}

// Coordinator choreographs the realtime cart lifecycle: catalog push
// on connect, cart creation, product adds, checkout.
type Coordinator struct {
	hub      broadcaster
	carts    CartService
	catalog  Catalog
	notifier OrderNotifier
	log      *logrus.Logger
}

func NewCoordinator(hub broadcaster, carts CartService, catalog Catalog, notifier OrderNotifier, log *logrus.Logger) *Coordinator {
	return &Coordinator{
		hub:      hub,
		carts:    carts,
		catalog:  catalog,
		notifier: notifier,
		log:      log,
	}
}

// Connected pushes the catalog snapshot. The push is a broadcast, so
// every open connection receives it, not just the new one.
func (c *Coordinator) Connected(ctx context.Context) {
	c.log.Info("new user")

	products, err := c.catalog.GetAllProducts(ctx)
	if err != nil {
		c.log.Errorf("catalog load failed: %v", err)
		return
	}
	c.hub.Broadcast(EventProducts, products)
}

// Session holds the per-connection state: the connection itself and
// the currently active cart id. Handlers are registered once per
// connection; a second createCart replaces the active cart id instead
// of stacking listeners.
type Session struct {
	coord        *Coordinator
	conn         sender
	activeCartID string
}

func (c *Coordinator) NewSession(conn sender) *Session {
	return &Session{
		coord: c,
		conn:  conn,
	}
}

// Handle dispatches one client event. Called from the connection's
// read loop, so events on a connection are processed in arrival
// order.
func (s *Session) Handle(ctx context.Context, env Envelope) {
	switch env.Event {
	case EventCreateCart:
		s.handleCreateCart(ctx)
	case EventAddProductToCart:
		s.handleAddProduct(ctx, env.Data)
	case EventFinishPurchase:
		s.handleFinishPurchase(ctx, env.Data)
	default:
		s.coord.log.Warnf("unknown client event %q", env.Event)
	}
}

func (s *Session) handleCreateCart(ctx context.Context) {
	cart, err := s.coord.carts.Create(ctx)
	if err != nil {
		s.coord.log.Errorf("cart creation failed: %v", err)
		return
	}

	s.activeCartID = cart.ID
	s.coord.hub.Broadcast(EventCartCreated, map[string]any{"cart": cart})
}

func (s *Session) handleAddProduct(ctx context.Context, data json.RawMessage) {
	if s.activeCartID == "" {
		s.coord.log.Warn("addProductToCart before createCart, ignoring")
		return
	}

	productID, err := parseProductID(data)
	if err != nil {
		s.coord.log.Warnf("bad product id %s: %v", data, err)
		return
	}

	if err := s.coord.carts.AddProduct(ctx, s.activeCartID, productID); err != nil {
		s.coord.log.Errorf("add product failed: %v", err)
		return
	}

	cart, err := s.coord.carts.Get(ctx, s.activeCartID)
	if err != nil {
		s.coord.log.Errorf("cart read failed: %v", err)
		return
	}

	ids := cart.ProductIDs()
	if err := s.conn.Emit(EventRefreshCart, ids); err != nil {
		s.coord.log.Warnf("refreshCart emit failed: %v", err)
	}

	// Resolve ids one by one, preserving the stored order. No dedup:
	// a product added twice shows up twice.
	resolved := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.coord.catalog.GetProduct(ctx, id)
		if err != nil {
			s.coord.log.Errorf("product %d lookup failed: %v", id, err)
			continue
		}
		resolved = append(resolved, product)
	}

	if err := s.conn.Emit(EventRefreshCart, resolved); err != nil {
		s.coord.log.Warnf("refreshCart emit failed: %v", err)
	}
}

// handleFinishPurchase runs the checkout side effects and then drains
// the cart, whatever the notification outcome was. There is no
// acknowledgment event.
func (s *Session) handleFinishPurchase(ctx context.Context, data json.RawMessage) {
	if s.activeCartID == "" {
		s.coord.log.Warn("finishPurchase before createCart, ignoring")
		return
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		s.coord.log.Warnf("bad finishPurchase payload: %v", err)
		return
	}

	s.coord.log.Infof("purchase from %s, %d items", order.Contact.User, len(order.Items))
	s.coord.notifier.OrderPlaced(order)

	s.coord.carts.Drain(ctx, s.activeCartID)
}

func parseProductID(data json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		return id, nil
	}

	// Clients may send the id as a string.
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return 0, err
	}
	return strconv.ParseInt(str, 10, 64)
}
