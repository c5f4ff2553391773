// Package reference loads the read-only datasets a define run consults: the
// artist authority list (AtoM authority record CSV) and the exhibition-cycle
// subjects (SKOS RDF/XML). Both are built once per batch and shared by every
// worker without locking.
package reference
