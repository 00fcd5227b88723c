package repositories

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	dbm "vivubot/internal/models/db_models"
)

// dryRunDB renders postgres SQL without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=vivu dbname=vivu sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestSessionMessages_OrdersByInsertionSequence(t *testing.T) {
	db := dryRunDB(t)
	sessionPK := uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return sessionMessages(tx, sessionPK).Find(&[]dbm.ChatMessage{})
	})

	assert.Contains(t, sql, "chat_session_id = '"+sessionPK.String()+"'")
	assert.True(t, strings.HasSuffix(sql, "ORDER BY seq ASC"), sql)
	// two messages saved in the same second share a timestamp
	assert.NotContains(t, sql, "timestamp")
	assert.NotContains(t, sql, "created_at")
}

func TestChatMessage_SeqIsAssignedByDatabase(t *testing.T) {
	s, err := schema.Parse(&dbm.ChatMessage{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	seq := s.LookUpField("Seq")
	require.NotNil(t, seq)
	assert.Equal(t, "seq", seq.DBName)
	assert.True(t, seq.AutoIncrement)
	assert.Equal(t, "bigserial", seq.TagSettings["TYPE"])

	db := dryRunDB(t)
	sessionPK := uuid.New()
	var inserts []string
	for _, text := range []string{"xin chào", "đi Đà Lạt"} {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return tx.Create(&dbm.ChatMessage{
				ChatSessionID: sessionPK,
				Sender:        "user",
				Message:       text,
				Timestamp:     1700000000,
			})
		})
		inserts = append(inserts, sql)
	}

	for _, sql := range inserts {
		columns := strings.SplitN(sql, "VALUES", 2)[0]
		assert.Contains(t, columns, `"timestamp"`)
		assert.NotContains(t, columns, `"seq"`)
	}
}
