package crm

// forEachPage pages through an offset/limit listing until a short page
// signals the end. fetch reports how many rows the page returned.
func forEachPage(limit int, fetch func(offset, limit int) (int, error)) error {
	offset := 0
	for {
		n, err := fetch(offset, limit)
		if err != nil {
			return err
		}
		if n < limit {
			return nil
		}
		offset += n
	}
}
