/*
Package domain contains the core domain models for outlet placement.

It defines the vocabulary shared by the placement runtime and its adapters:
locations, cycle directions, split directions, the frozen outlet
configuration, placement options, lifecycle states and the placement events
emitted to observers. This package is kept pure and free of I/O, following the
same hexagonal split as the rest of the module.

# Key Entities

  - Location: where an item lives (the center container or a named dock).
  - Config: the configuration an outlet is created with. It never changes
    after creation.
  - PlacementOptions: the split/adjacency/activation preferences reused by
    every placement of an outlet.
  - Event: a record of a placement operation, delivered through LifecycleHooks.
*/
package domain
