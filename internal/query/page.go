package query

import "fmt"

// Page — метаданные страницы.
//   - Number — номер страницы (с 1);
//   - Total — размер отфильтрованной коллекции;
//   - From/To — границы видимого среза (с 1, включительно); 0/0 для пустой страницы.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
	From   int `json:"from"`
	To     int `json:"to"`
}

// Paginate возвращает страницу number размера size.
// number == 0 трактуется как первая страница; number < 0 или size <= 0 — ErrInvalidQuery.
// Страница за пределами коллекции пуста, Total при этом сохраняется.
func Paginate[T any](items []T, number, size int) ([]T, Page, error) {
	if number < 0 {
		return nil, Page{}, fmt.Errorf("%w: page must be >= 1", ErrInvalidQuery)
	}

	if size <= 0 {
		return nil, Page{}, fmt.Errorf("%w: page_size must be > 0", ErrInvalidQuery)
	}

	if number == 0 {
		number = 1
	}

	total := len(items)
	page := Page{
		Number: number,
		Size:   size,
		Total:  total,
		Pages:  (total + size - 1) / size,
	}

	start := (number - 1) * size
	if start >= total {
		return []T{}, page, nil
	}

	end := min(start+size, total)

	page.From = start + 1
	page.To = end

	out := make([]T, end-start)
	copy(out, items[start:end])

	return out, page, nil
}
