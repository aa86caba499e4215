package repository

import (
	"database/sql"

	"github.com/toneill57/muva-chat-sub004/internal/domain"
)

// Los campos SIRE se guardan en columnas nullable: NULL significa "aún no
// recolectado" y '' significa "confirmado vacío". Estas conversiones preservan
// esa distinción tri-estado entre la base y el dominio.

func fieldFromNull(ns sql.NullString) domain.FieldValue {
	return domain.FieldValue{Known: ns.Valid, Value: ns.String}
}

func nullFromField(v domain.FieldValue) sql.NullString {
	return sql.NullString{String: v.Value, Valid: v.Known}
}
