// Package inventory holds stock levels, the reservations that earmark stock for
// order item sections, and the procurement demands raised for shortages.
//
// Stock moves only through reservations: Reserve moves quantity from available
// to reserved, Release moves it back and Consume takes it off the shelf.
package inventory
