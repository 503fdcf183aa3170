package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Driver pq para PostgreSQL
	"github.com/lib/pq"
)

// NewPostgresDB inicializa e configura o pool de conexões com o PostgreSQL.
// Retorna a conexão *sql.DB pronta para uso.
func NewPostgresDB(dataSourceName string) (*sql.DB, error) {

	// 1. Abrir a Conexão (Sem tentar ainda usar o pool)
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Testar a Conexão Imediatamente
	// Garante que as credenciais e o servidor estão corretos
	err = db.Ping()
	if err != nil {
		db.Close() // Fecha a conexão aberta se falhar
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 3. Configuração do Connection Pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}

// uniqueViolation é o código SQLSTATE do PostgreSQL para violação de
// constraint de unicidade.
const uniqueViolation = "23505"

// IsUniqueViolation verifica se o erro do driver corresponde a uma violação
// de chave única. É a guarda autoritativa contra a corrida
// "verificar-depois-inserir" no registro de usuários: mesmo que duas
// requisições concorrentes passem pela checagem de email, apenas uma
// consegue inserir.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
