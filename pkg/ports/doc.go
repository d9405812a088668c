/*
Package ports defines the driven ports (interfaces) for the surveyflow engine.

These interfaces decouple the core logic from external implementations,
allowing the session store to work with various persistence backends and
locking strategies.

# Key Interfaces

  - StateStore: Responsible for persisting and loading session state.
  - DistributedLocker: Provides distributed locking for handling concurrent
    session access across replicas.
*/
package ports
