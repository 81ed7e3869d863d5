// Package api declares the todolist gRPC service: its messages, a JSON wire
// codec, the service descriptor, and a typed client.
package api

type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// GetListRequest asks for a list by user-typed name. An empty name means
// the Today list.
type GetListRequest struct {
	Name string `json:"name"`
}

type ListResponse struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// AddItemRequest adds Item to the list titled List.
type AddItemRequest struct {
	Item string `json:"item"`
	List string `json:"list"`
}

type AddItemResponse struct {
	Item Item `json:"item"`
}

// DeleteItemRequest removes the item with ID from the list titled List.
type DeleteItemRequest struct {
	ID   string `json:"id"`
	List string `json:"list"`
}

type DeleteItemResponse struct{}

type ListListsRequest struct{}

type ListListsResponse struct {
	Names []string `json:"names"`
}

type BackupRequest struct{}

type BackupResponse struct {
	Key string `json:"key"`
}
