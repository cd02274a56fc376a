package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	"github.com/quarryworks/quarry_books_app/internal/models"
	"github.com/quarryworks/quarry_books_app/internal/utils/mapping"
)

// PgxSourceRepository reads the operational transaction tables owned by the
// sales/expenses/banking/prepayment modules. The accounting core never
// writes to them.
type PgxSourceRepository struct {
	BaseRepository
}

// newPgxSourceRepository creates a new repository for source transaction data.
func newPgxSourceRepository(pool *pgxpool.Pool) portsrepo.SourceReader {
	return &PgxSourceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SourceReader = (*PgxSourceRepository)(nil)

const saleColumns = `sale_id, quarry_id, sale_date, vehicle_reg, product_name, is_reject, quantity, price_per_unit, commission_per_unit, broker_name, status, payment_received_date`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.QuarryID,
		&m.SaleDate,
		&m.VehicleReg,
		&m.ProductName,
		&m.IsReject,
		&m.Quantity,
		&m.PricePerUnit,
		&m.CommissionPerUnit,
		&m.BrokerName,
		&m.Status,
		&m.PaymentReceivedDate,
	)
	return m, err
}

func (r *PgxSourceRepository) querySales(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, mapping.ToDomainSale(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}

// ListSales retrieves sales dated within the range, inclusive. Source rows
// carry intraday timestamps, so range bounds compare at day precision.
func (r *PgxSourceRepository) ListSales(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE quarry_id = $1 AND sale_date::date >= $2::timestamptz::date AND sale_date::date <= $3::timestamptz::date
		ORDER BY sale_date, sale_id;
	`
	return r.querySales(ctx, query, quarryID, from, to)
}

// ListUnpaidSales retrieves sales still unpaid, dated on or before asOf.
func (r *PgxSourceRepository) ListUnpaidSales(ctx context.Context, quarryID string, asOf time.Time) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE quarry_id = $1 AND status = $2 AND sale_date::date <= $3::timestamptz::date
		ORDER BY sale_date, sale_id;
	`
	return r.querySales(ctx, query, quarryID, string(domain.SaleNotPaid), asOf)
}

// ListSalesPaidBetween retrieves paid sales whose payment date falls in the range.
func (r *PgxSourceRepository) ListSalesPaidBetween(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE quarry_id = $1 AND status = $2
			AND payment_received_date IS NOT NULL
			AND payment_received_date::date >= $3::timestamptz::date AND payment_received_date::date <= $4::timestamptz::date
		ORDER BY payment_received_date, sale_id;
	`
	return r.querySales(ctx, query, quarryID, string(domain.SalePaid), from, to)
}

// FindSaleByID retrieves one sale.
func (r *PgxSourceRepository) FindSaleByID(ctx context.Context, quarryID, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE quarry_id = $1 AND sale_id = $2;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, quarryID, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	d := mapping.ToDomainSale(m)
	return &d, nil
}

// ListExpenses retrieves expenses dated within the range, inclusive.
func (r *PgxSourceRepository) ListExpenses(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Expense, error) {
	query := `
		SELECT expense_id, quarry_id, expense_date, category, description, amount
		FROM expenses
		WHERE quarry_id = $1 AND expense_date::date >= $2::timestamptz::date AND expense_date::date <= $3::timestamptz::date
		ORDER BY expense_date, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var m models.Expense
		if err := rows.Scan(&m.ExpenseID, &m.QuarryID, &m.ExpenseDate, &m.Category, &m.Description, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// ListBankings retrieves bank deposits dated within the range, inclusive.
func (r *PgxSourceRepository) ListBankings(ctx context.Context, quarryID string, from, to time.Time) ([]domain.BankingDeposit, error) {
	query := `
		SELECT banking_id, quarry_id, deposit_date, amount_banked, reference
		FROM bankings
		WHERE quarry_id = $1 AND deposit_date::date >= $2::timestamptz::date AND deposit_date::date <= $3::timestamptz::date
		ORDER BY deposit_date, banking_id;
	`
	rows, err := r.Pool.Query(ctx, query, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bankings: %w", err)
	}
	defer rows.Close()

	deposits := []domain.BankingDeposit{}
	for rows.Next() {
		var m models.BankingDeposit
		if err := rows.Scan(&m.BankingID, &m.QuarryID, &m.DepositDate, &m.AmountBanked, &m.Reference); err != nil {
			return nil, fmt.Errorf("failed to scan banking row: %w", err)
		}
		deposits = append(deposits, mapping.ToDomainBankingDeposit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banking rows: %w", err)
	}
	return deposits, nil
}

// ListPrepayments retrieves prepayments dated within the range, inclusive.
func (r *PgxSourceRepository) ListPrepayments(ctx context.Context, quarryID string, from, to time.Time) ([]domain.Prepayment, error) {
	query := `
		SELECT prepayment_id, quarry_id, payment_date, customer_name, vehicle_reg, total_amount_paid
		FROM prepayments
		WHERE quarry_id = $1 AND payment_date::date >= $2::timestamptz::date AND payment_date::date <= $3::timestamptz::date
		ORDER BY payment_date, prepayment_id;
	`
	rows, err := r.Pool.Query(ctx, query, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query prepayments: %w", err)
	}
	defer rows.Close()

	prepayments := []domain.Prepayment{}
	for rows.Next() {
		var m models.Prepayment
		if err := rows.Scan(&m.PrepaymentID, &m.QuarryID, &m.PaymentDate, &m.CustomerName, &m.VehicleReg, &m.TotalAmountPaid); err != nil {
			return nil, fmt.Errorf("failed to scan prepayment row: %w", err)
		}
		prepayments = append(prepayments, mapping.ToDomainPrepayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prepayment rows: %w", err)
	}
	return prepayments, nil
}
