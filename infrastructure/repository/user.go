package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/jpcs2004/store-performance-api/infrastructure/database/postgres"
	"github.com/jpcs2004/store-performance-api/internal/domain"
)

const (
	usersTable      = "users"
	userStoresTable = "user_stores"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	UpdateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(userID int) (*domain.User, error)
	ListUser() ([]*domain.User, error)
	GetUserStores(userID int) ([]string, error)
	AssignStore(userID int, storeCode string) error
	UnassignStore(userID int, storeCode string) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("name", "lastname", "email", "password_hash", "active", "role_id").
		Values(user.Name, user.Lastname, user.Email, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(usersSQL, usersArgs...).Scan(&user.ID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		queryBuilder = queryBuilder.Set("name", user.Name)
	}

	if user.Lastname != "" {
		queryBuilder = queryBuilder.Set("lastname", user.Lastname)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", user.RoleID)
	}

	if user.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", user.DeletedAt)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(usersSQL, usersArgs...)
	if err != nil {
		return err
	}

	return nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow("SELECT id, name, lastname, email, password_hash, active, role_id, created_at, updated_at FROM users WHERE email = $1", email).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stores, err := r.GetUserStores(user.ID)
	if err != nil {
		logrus.Warnf("Erro ao buscar lojas atribuídas para o usuário %d: %v", user.ID, err)
		// Continua mesmo com erro, apenas com a lista vazia
	} else {
		user.AssignedStores = stores
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(userID int) (*domain.User, error) {
	var user domain.User
	err := r.conn.QueryRow("SELECT id, name, lastname, email, password_hash, active, role_id, created_at, updated_at FROM users WHERE deleted = false AND id = $1", userID).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stores, err := r.GetUserStores(user.ID)
	if err != nil {
		logrus.Warnf("Erro ao buscar lojas atribuídas para o usuário %d: %v", user.ID, err)
	} else {
		user.AssignedStores = stores
	}

	return &user, nil
}

func (r *userRepository) ListUser() ([]*domain.User, error) {
	queryBuilder := squirrel.
		Select("id", "name", "lastname", "email", "active", "role_id", "created_at", "updated_at").
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(usersSQL, usersArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Lastname,
			&user.Email,
			&user.Active,
			&user.RoleID,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}

		stores, err := r.GetUserStores(user.ID)
		if err != nil {
			logrus.Warnf("Erro ao buscar lojas atribuídas para o usuário %d: %v", user.ID, err)
		} else {
			user.AssignedStores = stores
		}

		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUserStores retorna os códigos das lojas atribuídas ao usuário. Para
// gerentes esta lista define o escopo de leitura e escrita.
func (r *userRepository) GetUserStores(userID int) ([]string, error) {
	query := squirrel.
		Select("store_code").
		From(userStoresTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("store_code ASC").
		PlaceholderFormat(squirrel.Dollar)

	storesSQL, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.Query(storesSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar lojas atribuídas: %w", err)
	}
	defer rows.Close()

	var stores []string
	for rows.Next() {
		var storeCode string
		if err := rows.Scan(&storeCode); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		stores = append(stores, storeCode)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return stores, nil
}

func (r *userRepository) AssignStore(userID int, storeCode string) error {
	query := squirrel.
		Insert(userStoresTable).
		Columns("user_id", "store_code").
		Values(userID, storeCode).
		Suffix("ON CONFLICT (user_id, store_code) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	assignSQL, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(assignSQL, args...)
	if err != nil {
		return fmt.Errorf("erro ao atribuir loja: %w", err)
	}

	return nil
}

func (r *userRepository) UnassignStore(userID int, storeCode string) error {
	query := squirrel.
		Delete(userStoresTable).
		Where(squirrel.Eq{"user_id": userID, "store_code": storeCode}).
		PlaceholderFormat(squirrel.Dollar)

	unassignSQL, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.Exec(unassignSQL, args...)
	if err != nil {
		return fmt.Errorf("erro ao desvincular loja: %w", err)
	}

	return nil
}
