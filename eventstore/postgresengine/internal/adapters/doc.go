// Package adapters lets the journal engine run on pgxpool.Pool, sql.DB or sqlx.DB.
//
// All adapters expose the same DBAdapter interface: plain SQL text in, rows or a
// rows-affected count out. Queries are fully rendered by goqu before they get here.
package adapters
