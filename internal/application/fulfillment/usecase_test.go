package fulfillment_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s25922/Cwiczenia4/internal/application/fulfillment"
	"github.com/s25922/Cwiczenia4/internal/domain"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store falso en memoria con semántica de Commit/Rollback real: el runner
// toma un snapshot del estado antes de ejecutar fn y lo restaura si fn falla.
// Permite verificar la atomicidad del núcleo sin una base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products   map[int64]entity.Product
	warehouses map[int64]entity.Warehouse
	orders     map[int64]entity.Order
	placements map[int64]entity.Placement
	nextID     int64

	// failCreate fuerza el fallo del insert para probar el rollback.
	failCreate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:   map[int64]entity.Product{},
		warehouses: map[int64]entity.Warehouse{},
		orders:     map[int64]entity.Order{},
		placements: map[int64]entity.Placement{},
		nextID:     1,
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	cp.nextID = s.nextID
	cp.failCreate = s.failCreate
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.warehouses {
		cp.warehouses[k] = v
	}
	for k, v := range s.orders {
		if v.FulfilledAt != nil {
			at := *v.FulfilledAt
			v.FulfilledAt = &at
		}
		cp.orders[k] = v
	}
	for k, v := range s.placements {
		cp.placements[k] = v
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.warehouses = from.warehouses
	s.orders = from.orders
	s.placements = from.placements
	s.nextID = from.nextID
}

func (s *fakeStore) orderPlaced(orderID int64) bool {
	for _, p := range s.placements {
		if p.OrderID == orderID {
			return true
		}
	}
	return false
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetPrice(_ context.Context, id int64) (decimal.NullDecimal, error) {
	p, ok := r.s.products[id]
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	return p.Price, nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *fakeWarehouseRepo) List(_ context.Context, _ string) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) FindEligibleForUpdate(_ context.Context, productID int64, amount int, before time.Time) (*entity.Order, error) {
	ids := make([]int64, 0, len(r.s.orders))
	for id := range r.s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		o := r.s.orders[id]
		if o.ProductID == productID && o.Amount == amount && o.CreatedAt.Before(before) && !r.s.orderPlaced(o.ID) {
			return &o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) MarkFulfilled(_ context.Context, orderID int64, at time.Time) error {
	o, ok := r.s.orders[orderID]
	if !ok || o.FulfilledAt != nil {
		return errors.New("mark order fulfilled: pedido ya no disponible")
	}
	o.FulfilledAt = &at
	r.s.orders[orderID] = o
	return nil
}

type fakePlacementRepo struct{ s *fakeStore }

func (r *fakePlacementRepo) Create(_ context.Context, p *entity.Placement) (int64, error) {
	if r.s.failCreate != nil {
		return 0, r.s.failCreate
	}
	if r.s.orderPlaced(p.OrderID) {
		return 0, domain.ErrOrderAlreadyPlaced
	}
	id := r.s.nextID
	r.s.nextID++
	stored := *p
	stored.ID = id
	r.s.placements[id] = stored
	return id, nil
}

func (r *fakePlacementRepo) List(_ context.Context) ([]*entity.Placement, error) {
	ids := make([]int64, 0, len(r.s.placements))
	for id := range r.s.placements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]*entity.Placement, 0, len(ids))
	for _, id := range ids {
		p := r.s.placements[id]
		list = append(list, &p)
	}
	return list, nil
}

type fakeTxRunner struct {
	s         *fakeStore
	commits   int
	rollbacks int
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	placementRepo repository.PlacementRepository,
) error) error {
	before := t.s.snapshot()
	err := fn(
		&fakeProductRepo{s: t.s},
		&fakeWarehouseRepo{s: t.s},
		&fakeOrderRepo{s: t.s},
		&fakePlacementRepo{s: t.s},
	)
	if err != nil {
		t.s.restore(before)
		t.rollbacks++
		return err
	}
	t.commits++
	return nil
}

type fakeProcedure struct {
	id  int64
	err error
}

func (p *fakeProcedure) AddProductToWarehouse(context.Context, int64, int64, int, time.Time) (int64, error) {
	return p.id, p.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
)

func price(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

// seedStore: Producto 1 con precio 9.99, Bodega 1, Pedido 7 pendiente
// (producto 1, cantidad 5, creado en t0).
func seedStore() *fakeStore {
	s := newFakeStore()
	s.products[1] = entity.Product{ID: 1, Name: "tornillos", Price: price("9.99")}
	s.warehouses[1] = entity.Warehouse{ID: 1, Name: "central", Address: "Calle 1"}
	s.orders[7] = entity.Order{ID: 7, ProductID: 1, Amount: 5, CreatedAt: t0}
	return s
}

func newUseCase(s *fakeStore, proc fulfillment.ProcedureCaller) (*fulfillment.FulfillUseCase, *fakeTxRunner) {
	runner := &fakeTxRunner{s: s}
	return fulfillment.NewFulfillUseCase(runner, proc), runner
}

func input() fulfillment.FulfillInput {
	return fulfillment.FulfillInput{ProductID: 1, WarehouseID: 1, Amount: 5, CreatedAt: t1}
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino directo
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: pedido elegible existente -> se crea el placement con snapshot
// de precio y el pedido queda cumplido.
func TestFulfill_PedidoElegible_CreaPlacement(t *testing.T) {
	s := seedStore()
	uc, runner := newUseCase(s, nil)

	id, err := uc.Fulfill(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "el store asigna el primer ID")
	assert.Equal(t, 1, runner.commits)
	assert.Equal(t, 0, runner.rollbacks)

	order := s.orders[7]
	require.NotNil(t, order.FulfilledAt, "el pedido debe quedar cumplido")

	placement := s.placements[id]
	assert.Equal(t, int64(1), placement.ProductID)
	assert.Equal(t, int64(7), placement.OrderID)
	assert.Equal(t, int64(1), placement.WarehouseID)
	assert.Equal(t, 5, placement.Amount)
	assert.True(t, placement.Price.Equal(decimal.RequireFromString("9.99")),
		"el placement guarda el precio vigente como snapshot")
	assert.Equal(t, t1, placement.CreatedAt, "created_at del placement es el instante de la solicitud")
}

// Escenario B: producto sin precio -> ErrMissingPrice y rollback completo:
// el pedido sigue pendiente y no hay placement.
func TestFulfill_ProductoSinPrecio_Rollback(t *testing.T) {
	s := seedStore()
	s.products[1] = entity.Product{ID: 1, Name: "tornillos"} // Price NULL
	uc, runner := newUseCase(s, nil)

	_, err := uc.Fulfill(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrMissingPrice)
	assert.Equal(t, 1, runner.rollbacks)

	assert.Nil(t, s.orders[7].FulfilledAt, "el pedido debe seguir pendiente tras el rollback")
	assert.Empty(t, s.placements, "no debe quedar ningún placement")
}

// Escenario C: producto inexistente -> ErrProductNotFound sin efectos.
func TestFulfill_ProductoInexistente(t *testing.T) {
	s := seedStore()
	uc, _ := newUseCase(s, nil)

	in := input()
	in.ProductID = 99
	_, err := uc.Fulfill(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, s.orders[7].FulfilledAt)
	assert.Empty(t, s.placements)
}

func TestFulfill_BodegaInexistente(t *testing.T) {
	s := seedStore()
	uc, _ := newUseCase(s, nil)

	in := input()
	in.WarehouseID = 99
	_, err := uc.Fulfill(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrWarehouseNotFound)
	assert.Empty(t, s.placements)
}

// Sin pedido elegible: cantidad distinta o pedido creado después de la
// solicitud -> ErrNoEligibleOrder.
func TestFulfill_SinPedidoElegible(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*fulfillment.FulfillInput)
	}{
		{"cantidad distinta", func(in *fulfillment.FulfillInput) { in.Amount = 3 }},
		{"solicitud anterior al pedido", func(in *fulfillment.FulfillInput) { in.CreatedAt = t0.Add(-time.Hour) }},
		{"solicitud simultánea al pedido", func(in *fulfillment.FulfillInput) { in.CreatedAt = t0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := seedStore()
			uc, _ := newUseCase(s, nil)
			in := input()
			tc.mutate(&in)
			_, err := uc.Fulfill(context.Background(), in)
			require.ErrorIs(t, err, domain.ErrNoEligibleOrder)
			assert.Empty(t, s.placements)
		})
	}
}

// Escenario D: con dos pedidos elegibles, la segunda llamada idéntica toma el
// pedido restante, nunca el ya registrado.
func TestFulfill_SegundaLlamadaTomaElOtroPedido(t *testing.T) {
	s := seedStore()
	s.orders[8] = entity.Order{ID: 8, ProductID: 1, Amount: 5, CreatedAt: t0}
	uc, _ := newUseCase(s, nil)

	id1, err := uc.Fulfill(context.Background(), input())
	require.NoError(t, err)
	id2, err := uc.Fulfill(context.Background(), input())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, int64(7), s.placements[id1].OrderID, "el desempate toma el pedido de menor ID")
	assert.Equal(t, int64(8), s.placements[id2].OrderID)

	// Tercera llamada: ya no queda pedido elegible.
	_, err = uc.Fulfill(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrNoEligibleOrder)
}

// Propiedad de cumplimiento único: un pedido cumplido no vuelve a ser
// seleccionado por la misma elegibilidad.
func TestFulfill_PedidoCumplidoNoSeReutiliza(t *testing.T) {
	s := seedStore()
	uc, _ := newUseCase(s, nil)

	_, err := uc.Fulfill(context.Background(), input())
	require.NoError(t, err)

	_, err = uc.Fulfill(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrNoEligibleOrder)
	assert.Len(t, s.placements, 1)
}

// El snapshot de precio es inmutable: cambiar el precio vivo del producto
// después del fulfillment no altera el placement.
func TestFulfill_SnapshotDePrecioInmutable(t *testing.T) {
	s := seedStore()
	uc, _ := newUseCase(s, nil)

	id, err := uc.Fulfill(context.Background(), input())
	require.NoError(t, err)

	p := s.products[1]
	p.Price = price("19.99")
	s.products[1] = p

	assert.True(t, s.placements[id].Price.Equal(decimal.RequireFromString("9.99")),
		"el precio del placement no debe recalcularse")
}

// Atomicidad: si el insert del placement falla, el update del pedido se
// revierte y el store queda byte a byte como antes de la llamada.
func TestFulfill_FalloDeInsert_RevierteTodo(t *testing.T) {
	s := seedStore()
	s.failCreate = errors.New("insert placement: connection reset")
	uc, runner := newUseCase(s, nil)

	_, err := uc.Fulfill(context.Background(), input())
	require.Error(t, err)
	assert.Equal(t, 1, runner.rollbacks)
	assert.Equal(t, 0, runner.commits)

	assert.Nil(t, s.orders[7].FulfilledAt, "el update del pedido debe revertirse")
	assert.Empty(t, s.placements)
	assert.Equal(t, int64(1), s.nextID, "ningún ID consumido tras el rollback")
}

// El constraint único de order_id como respaldo: si otra transacción ganó la
// carrera, el error se clasifica y todo se revierte.
func TestFulfill_CarreraPerdida_OrderAlreadyPlaced(t *testing.T) {
	s := seedStore()
	s.failCreate = domain.ErrOrderAlreadyPlaced
	uc, runner := newUseCase(s, nil)

	_, err := uc.Fulfill(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrOrderAlreadyPlaced)
	assert.Equal(t, 1, runner.rollbacks)
	assert.Nil(t, s.orders[7].FulfilledAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino por rutina almacenada
// ──────────────────────────────────────────────────────────────────────────────

func TestFulfillViaProcedure_Exito(t *testing.T) {
	uc, _ := newUseCase(seedStore(), &fakeProcedure{id: 42})

	id, err := uc.FulfillViaProcedure(context.Background(), input())
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestFulfillViaProcedure_CentinelaNegativo(t *testing.T) {
	uc, _ := newUseCase(seedStore(), &fakeProcedure{id: -3})

	_, err := uc.FulfillViaProcedure(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrProcedureFailed)
}

func TestFulfillViaProcedure_FalloDeTransporte(t *testing.T) {
	uc, _ := newUseCase(seedStore(), &fakeProcedure{err: domain.ErrProcedureFailed})

	_, err := uc.FulfillViaProcedure(context.Background(), input())
	require.ErrorIs(t, err, domain.ErrProcedureFailed)
}
