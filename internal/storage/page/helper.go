package page

// CreateTestPage builds a page of size bytes that starts with data
func CreateTestPage(size int, data []byte) *Page {
	p := &Page{data: make([]byte, size)}
	if len(data) > size {
		data = data[:size] // Truncate to fit
	}
	copy(p.data, data)
	return p
}
