package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-blog/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
// The transaction is rolled back when the handler panics or answers with an error status.
// The response is held back until the transaction settles, so a failed commit is
// answered with 500 instead of the handler's success response.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestIDFromContext(r.Context())

			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "request_id", reqID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			state := &txState{tx: tx}
			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					state.rolledBack()
					panic(rec)
				}
			}()

			r = r.WithContext(context.WithValue(r.Context(), txKey, state))

			bw := newBufferedWriter()
			next.ServeHTTP(bw, r)

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "request_id", reqID, "error", err)
				}
				state.rolledBack()
				bw.flushTo(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "request_id", reqID, "error", err)
				state.rolledBack()
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			state.committed()
			bw.flushTo(w)
		})
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

type txState struct {
	tx         *sqlx.Tx
	onCommit   []func()
	onRollback []func()
}

func (s *txState) committed() {
	for _, fn := range s.onCommit {
		fn()
	}
}

func (s *txState) rolledBack() {
	for _, fn := range s.onRollback {
		fn()
	}
}

func stateFromContext(ctx context.Context) *txState {
	state, _ := ctx.Value(txKey).(*txState)
	return state
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	if state := stateFromContext(ctx); state != nil {
		return state.tx
	}
	return nil
}

// TxHooks defers side effects until the request transaction settles.
type TxHooks struct{}

// AfterCommit runs fn once the request transaction commits.
// Outside of a transaction fn runs immediately.
func (TxHooks) AfterCommit(ctx context.Context, fn func()) {
	state := stateFromContext(ctx)
	if state == nil {
		fn()
		return
	}
	state.onCommit = append(state.onCommit, fn)
}

// AfterRollback runs fn if the request transaction is rolled back or fails to commit.
// Outside of a transaction it does nothing.
func (TxHooks) AfterRollback(ctx context.Context, fn func()) {
	if state := stateFromContext(ctx); state != nil {
		state.onRollback = append(state.onRollback, fn)
	}
}

// bufferedWriter records the handler's response so it can be replaced before
// anything reaches the client.
type bufferedWriter struct {
	header      http.Header
	body        bytes.Buffer
	statusCode  int
	wroteHeader bool
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header), statusCode: http.StatusOK}
}

func (bw *bufferedWriter) Header() http.Header {
	return bw.header
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if !bw.wroteHeader {
		bw.statusCode = code
		bw.wroteHeader = true
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.wroteHeader = true
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, v := range bw.header {
		dst[k] = v
	}
	w.WriteHeader(bw.statusCode)
	if _, err := bw.body.WriteTo(w); err != nil {
		logger.Log.Errorw("failed to write response", "error", err)
	}
}
