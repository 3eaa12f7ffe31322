// Package production holds the production scheduler model: the heads that
// oversee order items, the rotation cursor that distributes items across
// them, and the per-section task chains executed by workers.
package production
