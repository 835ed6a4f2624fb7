/*
Package domain contains the core document model of the AAS editor.

It defines the entities of an Asset Administration Shell environment (Shells,
Submodels, SubmodelElements and References), the path shape used to address an
element inside a Submodel, and the container table that decides which element
kinds own nested children. This package is kept pure and free of I/O, following
Hexagonal Architecture principles.

# Key Entities

  - Environment: the root document with its three top-level sequences.
  - Shell: a digital-twin descriptor pointing at the Submodels it owns.
  - Submodel: a named collection of SubmodelElements.
  - SubmodelElement: a closed sum type with one variant per supported kind.
  - Path: ordered container-key/index steps from a Submodel root to an element.
*/
package domain
