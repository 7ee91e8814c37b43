/*
Package ports defines the driven ports (interfaces) the outlet runtime consumes.

The runtime never touches a concrete editor workspace. Everything it needs
(panes, the center container, docks, focus, opening items) is reached through
the Placement Host declared here, so the same state machine can run against an
in-memory workspace in tests or a real UI host.

# Key Interfaces

  - Host: entry point to the workspace (active pane, center, docks, focus, open).
  - Container / Dock: a pane container; docks additionally show and hide.
  - Pane: holds items, has one active item, can split and move items.
  - Item: the content placed by the host, identified by ID.

Optional capabilities (Titled, Classed, ModifiedTracker, CommandRegistry) are
detected with type assertions; hosts and items that lack them still work.
*/
package ports
