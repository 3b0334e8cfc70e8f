package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"melodex/internal/models"
)

// FoldersByIDs batch-resolves folder references. Unknown ids are
// silently absent from the result.
func (s *Store) FoldersByIDs(ctx context.Context, ids []int64) ([]models.Folder, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, user_id
		FROM folders
		WHERE id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.UserID); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}
