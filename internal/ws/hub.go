// Package ws streams newly settled monetary donations to connected
// donation-history viewers.
package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Client is one connected viewer.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// DonationAlert is the broadcast payload. Contact details are already
// privacy-masked by the publisher.
type DonationAlert struct {
	DonorName string `json:"donor_name"`
	Contact   string `json:"contact"`
	Amount    int    `json:"amount"`
	Method    string `json:"payment_method"`
	CreatedAt string `json:"created_at"`
}

// Hub fans donation alerts out to every connected client.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan DonationAlert
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan DonationAlert),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Printf("donation ticker client connected (%d total)", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Printf("donation ticker client disconnected (%d total)", len(h.Clients))
			}

		case alert := <-h.Broadcast:
			jsonData, err := json.Marshal(alert)
			if err != nil {
				log.Println("failed to marshal donation alert:", err)
				continue
			}
			for client := range h.Clients {
				select {
				case client.Send <- jsonData:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
