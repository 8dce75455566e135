package inbound

import "github.com/pkaramon/book-store-sub000/internal/cart/usecase"

type AddToCartRequest struct {
	BookID string `json:"bookId"`
}

type CartItemResponse struct {
	Book struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Price    int64  `json:"price"`
		CoverKey string `json:"coverKey,omitempty"`
	} `json:"book"`
	Author struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"author"`
}

type CartResponse struct {
	CustomerID string             `json:"customerId"`
	Items      []CartItemResponse `json:"items"`
}

func toCartResponse(c *usecase.CartOutput) CartResponse {
	resp := CartResponse{CustomerID: c.CustomerID, Items: make([]CartItemResponse, 0, len(c.Items))}
	for _, it := range c.Items {
		var item CartItemResponse
		item.Book.ID = it.Book.ID
		item.Book.Title = it.Book.Title
		item.Book.Price = it.Book.Price
		item.Book.CoverKey = it.Book.CoverKey
		item.Author.ID = it.Author.ID
		item.Author.FirstName = it.Author.FirstName
		item.Author.LastName = it.Author.LastName
		resp.Items = append(resp.Items, item)
	}
	return resp
}
