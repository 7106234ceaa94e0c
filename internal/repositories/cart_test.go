package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souq/internal/models"
)

func TestCartRepository_AddItem(t *testing.T) {
	item := models.CartItem{
		ID:        "item-1",
		ProductID: "prod-1",
		SalePrice: decimal.NewNullDecimal(decimal.RequireFromString("250.50")),
	}

	t.Run("inserts into the user's cart", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO carts").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id FROM carts WHERE user_id").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cart-1"))
		mock.ExpectExec("INSERT INTO cart_items").
			WithArgs(item.ID, "cart-1", item.ProductID, item.SalePrice, item.RentalTotal).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewCartRepository(db)
		cartID, err := repo.AddItem("user-1", item)

		require.NoError(t, err)
		assert.Equal(t, "cart-1", cartID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate product surfaces as conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO carts").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id FROM carts WHERE user_id").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cart-1"))
		mock.ExpectExec("INSERT INTO cart_items").
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		repo := NewCartRepository(db)
		_, err = repo.AddItem("user-1", item)

		assert.ErrorIs(t, err, models.ErrDuplicateCartItem)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_RemoveItem(t *testing.T) {
	t.Run("missing cart is NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id FROM carts WHERE user_id").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		repo := NewCartRepository(db)
		_, err = repo.RemoveItem("user-1", "item-1")

		assert.ErrorIs(t, err, models.ErrCartNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent item deletes zero rows without error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id FROM carts WHERE user_id").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cart-1"))
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("item-missing", "cart-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewCartRepository(db)
		cartID, err := repo.RemoveItem("user-1", "item-missing")

		require.NoError(t, err)
		assert.Equal(t, "cart-1", cartID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
