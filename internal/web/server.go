package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/minirel/minirel/internal/minirel"
)

// Server is a small HTML dashboard over a database: it lists tables, offers
// CRUD forms for the demo users and orders tables and renders the join of
// the two. Every handler goes through ExecuteStatement, the same entry point
// the shell uses.
type Server struct {
	db     *minirel.Database
	logger *zap.Logger
	tmpl   *template.Template
}

func NewServer(db *minirel.Database, logger *zap.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		tmpl:   template.Must(template.New("web").Parse(pageTemplates)),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /users", s.handleUsers)
	mux.HandleFunc("POST /users/add", s.handleUserAdd)
	mux.HandleFunc("POST /users/edit", s.handleUserEdit)
	mux.HandleFunc("POST /users/delete", s.handleUserDelete)
	mux.HandleFunc("GET /orders", s.handleOrders)
	mux.HandleFunc("POST /orders/add", s.handleOrderAdd)
	mux.HandleFunc("POST /orders/edit", s.handleOrderEdit)
	mux.HandleFunc("POST /orders/delete", s.handleOrderDelete)
	mux.HandleFunc("GET /orders/join", s.handleOrdersJoin)
	return mux
}

// resultView is a template friendly rendering of a statement result.
type resultView struct {
	Columns []string
	Rows    [][]string
}

func (s *Server) query(ctx context.Context, stmt minirel.Statement) (resultView, error) {
	result, err := s.db.ExecuteStatement(ctx, stmt)
	if err != nil {
		return resultView{}, err
	}
	view := resultView{}
	for _, aColumn := range result.Columns {
		view.Columns = append(view.Columns, aColumn.Name)
	}
	for result.Rows.Next(ctx) {
		aRow := result.Rows.Row()
		values := make([]string, 0, len(aRow.Values))
		for _, aValue := range aRow.Values {
			values = append(values, aValue.String())
		}
		view.Rows = append(view.Rows, values)
	}
	if err := result.Rows.Err(); err != nil {
		return resultView{}, err
	}
	return view, nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Sugar().With("error", err).Error("rendering template")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Sugar().With(
		"path", r.URL.Path,
		"error", err,
	).Warn("request failed")
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	type tableInfo struct {
		Name string
		Rows int
	}
	sizes := s.db.TableSizes(r.Context())
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	tables := make([]tableInfo, 0, len(names))
	for _, name := range names {
		tables = append(tables, tableInfo{Name: name, Rows: sizes[name]})
	}
	s.render(w, "index", tables)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	view, err := s.query(r.Context(), minirel.Statement{
		Kind:       minirel.Select,
		TableNames: []string{usersTable},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "users", view)
}

func (s *Server) handleUserAdd(w http.ResponseWriter, r *http.Request) {
	age, err := strconv.ParseInt(r.FormValue("age"), 10, 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("age must be an integer"))
		return
	}
	_, err = s.db.ExecuteStatement(r.Context(), minirel.Statement{
		Kind:      minirel.Insert,
		TableName: usersTable,
		Fields:    []minirel.Field{{Name: "email"}, {Name: "name"}, {Name: "age"}},
		Inserts: [][]minirel.Value{
			{
				minirel.NewText(r.FormValue("email")),
				minirel.NewText(r.FormValue("name")),
				minirel.NewInteger(age),
			},
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("id must be an integer"))
		return
	}
	updates := make(map[string]minirel.Value)
	if email := r.FormValue("email"); email != "" {
		updates["email"] = minirel.NewText(email)
	}
	if name := r.FormValue("name"); name != "" {
		updates["name"] = minirel.NewText(name)
	}
	if ageValue := r.FormValue("age"); ageValue != "" {
		age, err := strconv.ParseInt(ageValue, 10, 64)
		if err != nil {
			s.fail(w, r, fmt.Errorf("age must be an integer"))
			return
		}
		updates["age"] = minirel.NewInteger(age)
	}
	if len(updates) == 0 {
		s.fail(w, r, fmt.Errorf("nothing to update"))
		return
	}
	_, err = s.db.ExecuteStatement(r.Context(), minirel.Statement{
		Kind:      minirel.Update,
		TableName: usersTable,
		Updates:   updates,
		Conditions: minirel.OneOrMore{
			{minirel.FieldIsEqual("id", minirel.NewInteger(id))},
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, usersTable, "/users")
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	view, err := s.query(r.Context(), minirel.Statement{
		Kind:       minirel.Select,
		TableNames: []string{ordersTable},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "orders", view)
}

func (s *Server) handleOrderAdd(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("user_id must be an integer"))
		return
	}
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("amount must be a number"))
		return
	}
	_, err = s.db.ExecuteStatement(r.Context(), minirel.Statement{
		Kind:      minirel.Insert,
		TableName: ordersTable,
		Fields:    []minirel.Field{{Name: "user_id"}, {Name: "product"}, {Name: "amount"}},
		Inserts: [][]minirel.Value{
			{
				minirel.NewInteger(userID),
				minirel.NewText(r.FormValue("product")),
				minirel.NewReal(amount),
			},
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (s *Server) handleOrderEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("id must be an integer"))
		return
	}
	updates := make(map[string]minirel.Value)
	if userIDValue := r.FormValue("user_id"); userIDValue != "" {
		userID, err := strconv.ParseInt(userIDValue, 10, 64)
		if err != nil {
			s.fail(w, r, fmt.Errorf("user_id must be an integer"))
			return
		}
		updates["user_id"] = minirel.NewInteger(userID)
	}
	if product := r.FormValue("product"); product != "" {
		updates["product"] = minirel.NewText(product)
	}
	if amountValue := r.FormValue("amount"); amountValue != "" {
		amount, err := strconv.ParseFloat(amountValue, 64)
		if err != nil {
			s.fail(w, r, fmt.Errorf("amount must be a number"))
			return
		}
		updates["amount"] = minirel.NewReal(amount)
	}
	if len(updates) == 0 {
		s.fail(w, r, fmt.Errorf("nothing to update"))
		return
	}
	_, err = s.db.ExecuteStatement(r.Context(), minirel.Statement{
		Kind:      minirel.Update,
		TableName: ordersTable,
		Updates:   updates,
		Conditions: minirel.OneOrMore{
			{minirel.FieldIsEqual("id", minirel.NewInteger(id))},
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (s *Server) handleOrderDelete(w http.ResponseWriter, r *http.Request) {
	s.handleDelete(w, r, ordersTable, "/orders")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, tableName, redirect string) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		s.fail(w, r, fmt.Errorf("id must be an integer"))
		return
	}
	_, err = s.db.ExecuteStatement(r.Context(), minirel.Statement{
		Kind:      minirel.Delete,
		TableName: tableName,
		Conditions: minirel.OneOrMore{
			{minirel.FieldIsEqual("id", minirel.NewInteger(id))},
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (s *Server) handleOrdersJoin(w http.ResponseWriter, r *http.Request) {
	view, err := s.query(r.Context(), minirel.Statement{
		Kind:       minirel.Select,
		TableNames: []string{usersTable, ordersTable},
		Fields: []minirel.Field{
			{Name: "users.name"},
			{Name: "users.email"},
			{Name: "orders.product"},
			{Name: "orders.amount"},
		},
		Conditions: minirel.OneOrMore{
			{minirel.FieldsAreEqual("users.id", "orders.user_id")},
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, "join", view)
}
