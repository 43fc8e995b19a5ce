package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DedupWindow suppresses repeats of the same alert. A sweep running hourly
// would otherwise file the same overdue vehicle 24 times a day.
const DedupWindow = 24 * time.Hour

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Notify inserts unless an alert with the same company, kind and title was
// filed inside the dedup window. Returns whether a row was created.
func (r *Repo) Notify(ctx context.Context, n *Notification, window time.Duration) (bool, error) {
	cutoff := time.Now().Add(-window)
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO notificacoes (empresa_id, usuario_id, tipo, titulo, mensagem, link)
		SELECT $1, $2, $3, $4, $5, NULLIF($6,'')
		WHERE NOT EXISTS (
			SELECT 1 FROM notificacoes
			WHERE empresa_id = $1 AND tipo = $3 AND titulo = $4 AND created_at > $7
		)`,
		n.CompanyID, n.UserID, n.Kind, n.Title, n.Message, n.Link, cutoff)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// OverdueMaintenance files the standard late-maintenance alert.
func (r *Repo) OverdueMaintenance(ctx context.Context, companyID, eventID int64, subject string, due time.Time) (bool, error) {
	return r.Notify(ctx, &Notification{
		CompanyID: companyID,
		Kind:      KindManutencaoAtrasada,
		Title:     fmt.Sprintf("Manutenção atrasada: %s", subject),
		Message:   fmt.Sprintf("A manutenção #%d estava agendada para %s e ainda não foi iniciada.", eventID, due.Format("02/01/2006")),
		Link:      fmt.Sprintf("/manutencoes/%d", eventID),
	}, DedupWindow)
}

// OverdueVehicle files the alert for a vehicle whose preventive window passed
// with nothing scheduled.
func (r *Repo) OverdueVehicle(ctx context.Context, companyID int64, plate string, due time.Time) (bool, error) {
	return r.Notify(ctx, &Notification{
		CompanyID: companyID,
		Kind:      KindManutencaoAtrasada,
		Title:     fmt.Sprintf("Manutenção preventiva vencida: %s", plate),
		Message:   fmt.Sprintf("O veículo %s venceu a manutenção preventiva em %s.", plate, due.Format("02/01/2006")),
		Link:      "/veiculos",
	}, DedupWindow)
}

// LowStock files the standard reorder alert.
func (r *Repo) LowStock(ctx context.Context, companyID int64, partName string, qty, min int) (bool, error) {
	return r.Notify(ctx, &Notification{
		CompanyID: companyID,
		Kind:      KindEstoqueBaixo,
		Title:     fmt.Sprintf("Estoque baixo: %s", partName),
		Message:   fmt.Sprintf("Restam %d unidades de %s (mínimo %d).", qty, partName, min),
		Link:      "/pecas",
	}, DedupWindow)
}

const notificationCols = `
	id, empresa_id, usuario_id, tipo, titulo, COALESCE(mensagem,''), lida, COALESCE(link,''), created_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	if err := row.Scan(
		&n.ID,
		&n.CompanyID,
		&n.UserID,
		&n.Kind,
		&n.Title,
		&n.Message,
		&n.Read,
		&n.Link,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *Repo) ListUnread(ctx context.Context, companyID int64, limit int) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+notificationCols+`
		FROM notificacoes
		WHERE empresa_id = $1 AND lida = FALSE
		ORDER BY created_at DESC
		LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *Repo) MarkRead(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE notificacoes SET lida = TRUE WHERE id = $1`, id)
	return err
}

func (r *Repo) MarkAllRead(ctx context.Context, companyID int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE notificacoes SET lida = TRUE WHERE empresa_id = $1 AND lida = FALSE`, companyID)
	return err
}
