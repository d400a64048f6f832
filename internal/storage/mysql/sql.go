package mysql

const insertEstimateSQL = `
INSERT INTO estimates
  (city, location, bedrooms, bathrooms, floor_area, floor_no, price)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// Newest first; aligns with the index on (created_at, id).
const listEstimatesSQL = `
SELECT id, city, location, bedrooms, bathrooms, floor_area, floor_no, price, created_at
FROM estimates
ORDER BY created_at DESC, id DESC
LIMIT ?
`
