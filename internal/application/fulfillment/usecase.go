package fulfillment

import (
	"context"
	"time"

	"github.com/s25922/Cwiczenia4/internal/domain"
	"github.com/s25922/Cwiczenia4/internal/domain/entity"
	"github.com/s25922/Cwiczenia4/internal/domain/repository"
)

// FulfillUseCase cumple pedidos de forma transaccional: valida producto y
// bodega, toma un pedido elegible con bloqueo de fila (SELECT FOR UPDATE),
// lo marca cumplido y registra el placement con snapshot de precio, todo con
// Commit o Rollback como unidad.
type FulfillUseCase struct {
	txRunner  TxRunner
	procedure ProcedureCaller
}

// NewFulfillUseCase construye el caso de uso.
func NewFulfillUseCase(txRunner TxRunner, procedure ProcedureCaller) *FulfillUseCase {
	return &FulfillUseCase{txRunner: txRunner, procedure: procedure}
}

// FulfillInput entrada para cumplir un pedido. CreatedAt es el instante de la
// solicitud: delimita la elegibilidad (pedidos creados estrictamente antes) y
// queda como created_at del registro en bodega.
type FulfillInput struct {
	ProductID   int64
	WarehouseID int64
	Amount      int
	CreatedAt   time.Time
}

// Fulfill ejecuta los pasos dentro de una sola transacción y devuelve el ID
// del placement creado. Cualquier fallo corta la secuencia y revierte todo:
//
//  1. producto existe                 -> domain.ErrProductNotFound
//  2. bodega existe                   -> domain.ErrWarehouseNotFound
//  3. pedido elegible (con FOR UPDATE) -> domain.ErrNoEligibleOrder
//  4. marcar pedido cumplido (ahora)
//  5. snapshot del precio vigente     -> domain.ErrMissingPrice si es NULL
//  6. insertar placement              -> domain.ErrOrderAlreadyPlaced si el
//     constraint único de order_id dispara (carrera perdida contra otra tx)
//
// El caller valida Amount > 0 antes de invocar; con Amount <= 0 simplemente
// no habrá pedido que coincida y se devuelve ErrNoEligibleOrder.
func (uc *FulfillUseCase) Fulfill(ctx context.Context, input FulfillInput) (int64, error) {
	var placementID int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		placementRepo repository.PlacementRepository,
	) error {
		product, err := productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		warehouse, err := warehouseRepo.GetByID(ctx, input.WarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.ErrWarehouseNotFound
		}

		// El bloqueo de fila cierra la ventana entre elegir el pedido y
		// marcarlo cumplido frente a otra transacción concurrente.
		order, err := orderRepo.FindEligibleForUpdate(ctx, input.ProductID, input.Amount, input.CreatedAt)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNoEligibleOrder
		}

		if err := orderRepo.MarkFulfilled(ctx, order.ID, time.Now()); err != nil {
			return err
		}

		// El precio se lee aquí, no antes: el snapshot debe ser el vigente al
		// momento de crear el placement.
		price, err := productRepo.GetPrice(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if !price.Valid {
			return domain.ErrMissingPrice
		}

		id, err := placementRepo.Create(ctx, &entity.Placement{
			ProductID:   input.ProductID,
			OrderID:     order.ID,
			WarehouseID: input.WarehouseID,
			Amount:      input.Amount,
			Price:       price.Decimal,
			CreatedAt:   input.CreatedAt,
		})
		if err != nil {
			return err
		}
		placementID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return placementID, nil
}

// FulfillViaProcedure delega toda la secuencia a la rutina almacenada
// add_product_to_warehouse y devuelve su escalar como ID del placement.
// Un retorno negativo es el centinela de fallo de la rutina; cualquier error
// de transporte o ejecución se envuelve en domain.ErrProcedureFailed. Aquí no
// hay validación ni rollback local: la corrección es del lado del servidor.
func (uc *FulfillUseCase) FulfillViaProcedure(ctx context.Context, input FulfillInput) (int64, error) {
	id, err := uc.procedure.AddProductToWarehouse(ctx, input.ProductID, input.WarehouseID, input.Amount, input.CreatedAt)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, domain.ErrProcedureFailed
	}
	return id, nil
}
