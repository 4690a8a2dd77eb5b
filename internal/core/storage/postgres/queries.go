package postgres

// SQL for the documents table. Every order and aggregate query is scoped by business,
// the partition key; only profile lookups read across partitions.

const (
	// queryInsertDocument inserts a new document. No ON CONFLICT clause: a duplicate
	// (business, id) or duplicate order id surfaces as a unique_violation.
	queryInsertDocument = `
		INSERT INTO documents (
			business, id, partition_id, record_type, order_id, occurred_at, body, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// queryUpsertDocument replaces the full document body keyed by (business, id).
	queryUpsertDocument = `
		INSERT INTO documents (
			business, id, partition_id, record_type, order_id, occurred_at, body, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (business, id)
		DO UPDATE SET
			record_type = EXCLUDED.record_type,
			body        = EXCLUDED.body,
			updated_at  = EXCLUDED.updated_at
	`

	// queryExistingOrderIDs backs the check-before-create dedup.
	queryExistingOrderIDs = `
		SELECT order_id
		FROM documents
		WHERE business = $1
		  AND record_type = 'order'
		  AND order_id = ANY($2)
	`

	// queryAggregatesByID preloads exactly the aggregates one cycle needs.
	queryAggregatesByID = `
		SELECT id, body
		FROM documents
		WHERE business = $1
		  AND record_type = $2
		  AND id = ANY($3)
	`

	queryListByRecordType = `
		SELECT id, body
		FROM documents
		WHERE business = $1
		  AND record_type = $2
		ORDER BY occurred_at ASC NULLS LAST, id ASC
	`

	queryGetProfile = `
		SELECT id, body
		FROM documents
		WHERE id = $1
		  AND record_type = 'profile'
		ORDER BY updated_at DESC
		LIMIT 1
	`

	queryListProfiles = `
		SELECT id, body
		FROM documents
		WHERE record_type = 'profile'
		ORDER BY id ASC
	`
)
