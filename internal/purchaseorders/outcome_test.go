package purchaseorders

import (
	"context"
	"testing"

	"github.com/angelmondragon/procureflow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sulfadoxine = "Sulfadoxine/Pyrimethamine 500/25mg Tablets"

func TestRecordAwardOutcomeConfirmsSubmittedPO(t *testing.T) {
	s := newSeededStore(t)

	result, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{
		AwardID: "award-003",
		SKU:     sulfadoxine,
		Status:  enums.AwardStatusConfirmed,
		Allocations: []models.ConfirmedAllocation{
			{PONumber: "PO/WA/2026-0203/002", AllocatedQuantity: 900000},
			{PONumber: "PO/WA/2026-0220/001", AllocatedQuantity: 600000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"po-sub-002"}, result.UpdatedPOs)
	assert.Equal(t, []string{"PO/WA/2026-0220/001"}, result.Unmatched)

	po, err := s.PurchaseOrder("po-sub-002")
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusConfirmed, po.Status)
	require.NotNil(t, po.LineItems[0].ConfirmedQuantity)
	assert.Equal(t, int64(900000), *po.LineItems[0].ConfirmedQuantity)
	assert.Equal(t, enums.LineItemStatusConfirmed, po.LineItems[0].Status)
	assert.True(t, ConfirmedSubtotal(po).Equal(po.LineItems[0].Amount))
}

func TestRecordAwardOutcomePartialSettlesPartially(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{
		AwardID:     "award-003",
		SKU:         sulfadoxine,
		Status:      enums.AwardStatusPartiallyConfirmed,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0203/002", AllocatedQuantity: 450000}},
	})
	require.NoError(t, err)

	po, err := s.PurchaseOrder("po-sub-002")
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusPartiallyConfirmed, po.Status)
	assert.Equal(t, enums.LineItemStatusPartiallyConfirmed, po.LineItems[0].Status)
}

func TestRecordAwardOutcomeWaitsForPendingLines(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{
		AwardID:     "award-x",
		SKU:         "Amoxicillin 500mg Capsules",
		Status:      enums.AwardStatusConfirmed,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0203/001", AllocatedQuantity: 750000}},
	})
	require.NoError(t, err)

	po, err := s.PurchaseOrder("po-sub-001")
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusSubmitted, po.Status, "other lines still pending")
	assert.Equal(t, enums.LineItemStatusConfirmed, po.LineItems[0].Status)
	assert.Empty(t, po.LineItems[1].Status)
}

func TestRecordAwardOutcomeWithdrawnRejectsLines(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{
		AwardID:     "award-003",
		SKU:         sulfadoxine,
		Status:      enums.AwardStatusWithdrawn,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0203/002"}},
	})
	require.NoError(t, err)

	po, err := s.PurchaseOrder("po-sub-002")
	require.NoError(t, err)
	assert.Equal(t, enums.LineItemStatusRejected, po.LineItems[0].Status)
	assert.Equal(t, int64(0), *po.LineItems[0].ConfirmedQuantity)
	assert.Equal(t, enums.PurchaseOrderStatusPartiallyConfirmed, po.Status)
	assert.True(t, ConfirmedSubtotal(po).IsZero())
}

func TestRecordAwardOutcomeLeavesNonSubmittedStatus(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{
		AwardID:     "award-006",
		SKU:         "Atenolol 50mg Tablets",
		Status:      enums.AwardStatusConfirmed,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0210/001", AllocatedQuantity: 180000}},
	})
	require.NoError(t, err)

	po, err := s.PurchaseOrder("po-clr-001")
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusClearedByCommercial, po.Status)
	assert.Equal(t, enums.LineItemStatusConfirmed, po.LineItems[1].Status)
}

func TestSendToSupplierSettlesResolvedPO(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	for _, outcome := range []AwardOutcome{
		{AwardID: "award-a", SKU: "Artemether/Lumefantrine 20/120mg Tablets", Status: enums.AwardStatusConfirmed},
		{AwardID: "award-b", SKU: "Atenolol 50mg Tablets", Status: enums.AwardStatusConfirmed},
	} {
		outcome.Allocations = []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0210/001", AllocatedQuantity: 1000}}
		_, err := s.RecordAwardOutcome(ctx, outcome)
		require.NoError(t, err)
	}

	po, err := s.ApplyAction(ctx, "po-clr-001", ActionSendToSupplier)
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusConfirmed, po.Status)
}

func TestSendToSupplierSettlesPartiallyWhenALineWasRejected(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.RecordAwardOutcome(ctx, AwardOutcome{
		AwardID:     "award-a",
		SKU:         "Artemether/Lumefantrine 20/120mg Tablets",
		Status:      enums.AwardStatusConfirmed,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0210/001", AllocatedQuantity: 1000}},
	})
	require.NoError(t, err)
	_, err = s.RecordAwardOutcome(ctx, AwardOutcome{
		AwardID:     "award-b",
		SKU:         "Atenolol 50mg Tablets",
		Status:      enums.AwardStatusWithdrawn,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0210/001"}},
	})
	require.NoError(t, err)

	po, err := s.UpdatePOStatus(ctx, "po-clr-001", enums.PurchaseOrderStatusSubmitted)
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusPartiallyConfirmed, po.Status)
}

func TestSendToSupplierKeepsSubmittedWhileLinesPending(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	_, err := s.RecordAwardOutcome(ctx, AwardOutcome{
		AwardID:     "award-006",
		SKU:         "Atenolol 50mg Tablets",
		Status:      enums.AwardStatusConfirmed,
		Allocations: []models.ConfirmedAllocation{{PONumber: "PO/WA/2026-0210/001", AllocatedQuantity: 180000}},
	})
	require.NoError(t, err)

	po, err := s.ApplyAction(ctx, "po-clr-001", ActionSendToSupplier)
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusSubmitted, po.Status)
}

func TestRecordAwardOutcomeAddsRepeatedPONumbers(t *testing.T) {
	s := newSeededStore(t)

	result, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{
		AwardID: "award-003",
		SKU:     sulfadoxine,
		Status:  enums.AwardStatusConfirmed,
		Allocations: []models.ConfirmedAllocation{
			{PONumber: "PO/WA/2026-0203/002", AllocatedQuantity: 500000},
			{PONumber: "PO/WA/2026-0203/002", AllocatedQuantity: 400000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"po-sub-002"}, result.UpdatedPOs)

	po, err := s.PurchaseOrder("po-sub-002")
	require.NoError(t, err)
	require.NotNil(t, po.LineItems[0].ConfirmedQuantity)
	assert.Equal(t, int64(900000), *po.LineItems[0].ConfirmedQuantity)
	assert.Equal(t, enums.PurchaseOrderStatusConfirmed, po.Status)
}

func TestRecordAwardOutcomeRejectsPendingStatus(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.RecordAwardOutcome(context.Background(), AwardOutcome{Status: enums.AwardStatusPendingConfirmation})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
