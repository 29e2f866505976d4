package s0

import (
	"github.com/cedendahlkim/cascade-core/internal/task"
)

// This file rounds out the algorithm-family coverage spec.md §4.3 lists
// for code_solver.py's matcher set: graph primitives, classic dynamic
// programming, combinatorics, intervals, data-structure simulations,
// matrix operations, and number theory beyond gcd/lcm. Each matcher
// follows the same descContains-then-emit-template shape as
// matchers_io.go; input formats mirror the "N then N values" convention
// established there so a single sandbox interpreter handles all of them.

// --- graph primitives ---------------------------------------------------

// matchBFSReachability: "N nodes, M edges (u v pairs), then source and
// target; is target reachable from source".
func matchBFSReachability(t *task.Task) (string, bool) {
	if !descContains(t, "reachable", "bfs") || descContains(t, "shortest") {
		return "", false
	}
	return `from collections import deque
n = int(input())
m = int(input())
adj = {i: [] for i in range(n)}
for _ in range(m):
    u, v = map(int, input().split())
    adj[u].append(v)
    adj[v].append(u)
src, dst = map(int, input().split())
seen = {src}
q = deque([src])
while q:
    cur = q.popleft()
    if cur == dst:
        break
    for nxt in adj[cur]:
        if nxt not in seen:
            seen.add(nxt)
            q.append(nxt)
print("yes" if dst in seen else "no")
`, true
}

// matchShortestPath: unweighted shortest-path length via BFS.
func matchShortestPath(t *task.Task) (string, bool) {
	if !descContains(t, "shortest path", "shortest unweighted path", "fewest edges") {
		return "", false
	}
	return `from collections import deque
n = int(input())
m = int(input())
adj = {i: [] for i in range(n)}
for _ in range(m):
    u, v = map(int, input().split())
    adj[u].append(v)
    adj[v].append(u)
src, dst = map(int, input().split())
dist = {src: 0}
q = deque([src])
while q:
    cur = q.popleft()
    for nxt in adj[cur]:
        if nxt not in dist:
            dist[nxt] = dist[cur] + 1
            q.append(nxt)
print(dist.get(dst, -1))
`, true
}

// matchTopoSort: Kahn's algorithm over a DAG.
func matchTopoSort(t *task.Task) (string, bool) {
	if !descContains(t, "topological order", "topological sort", "topo sort") {
		return "", false
	}
	return `from collections import deque
n = int(input())
m = int(input())
adj = {i: [] for i in range(n)}
indeg = [0] * n
for _ in range(m):
    u, v = map(int, input().split())
    adj[u].append(v)
    indeg[v] += 1
q = deque(i for i in range(n) if indeg[i] == 0)
order = []
while q:
    cur = q.popleft()
    order.append(cur)
    for nxt in adj[cur]:
        indeg[nxt] -= 1
        if indeg[nxt] == 0:
            q.append(nxt)
print(' '.join(map(str, order)) if len(order) == n else "cycle")
`, true
}

// matchCycleDetection: directed-graph cycle detection via coloured DFS.
func matchCycleDetection(t *task.Task) (string, bool) {
	if !descContains(t, "cycle", "contains a cycle", "has a cycle") {
		return "", false
	}
	return `import sys
sys.setrecursionlimit(10000)
n = int(input())
m = int(input())
adj = {i: [] for i in range(n)}
for _ in range(m):
    u, v = map(int, input().split())
    adj[u].append(v)
color = [0] * n

def dfs(u):
    color[u] = 1
    for v in adj[u]:
        if color[v] == 1:
            return True
        if color[v] == 0 and dfs(v):
            return True
    color[u] = 2
    return False

found = any(color[i] == 0 and dfs(i) for i in range(n))
print("yes" if found else "no")
`, true
}

// matchBipartiteCheck: two-colour BFS across all components.
func matchBipartiteCheck(t *task.Task) (string, bool) {
	if !descContains(t, "bipartite") {
		return "", false
	}
	return `from collections import deque
n = int(input())
m = int(input())
adj = {i: [] for i in range(n)}
for _ in range(m):
    u, v = map(int, input().split())
    adj[u].append(v)
    adj[v].append(u)
color = [-1] * n
ok = True
for start in range(n):
    if color[start] != -1:
        continue
    color[start] = 0
    q = deque([start])
    while q:
        cur = q.popleft()
        for nxt in adj[cur]:
            if color[nxt] == -1:
                color[nxt] = 1 - color[cur]
                q.append(nxt)
            elif color[nxt] == color[cur]:
                ok = False
print("yes" if ok else "no")
`, true
}

// matchConnectedComponents: union-find over an undirected graph.
func matchConnectedComponents(t *task.Task) (string, bool) {
	if !descContains(t, "connected components", "number of components") {
		return "", false
	}
	return `n = int(input())
m = int(input())
parent = list(range(n))

def find(x):
    while parent[x] != x:
        parent[x] = parent[parent[x]]
        x = parent[x]
    return x

for _ in range(m):
    u, v = map(int, input().split())
    ru, rv = find(u), find(v)
    if ru != rv:
        parent[ru] = rv
print(len({find(i) for i in range(n)}))
`, true
}

// --- classic dynamic programming ----------------------------------------

// matchKnapsack: 0/1 knapsack, N items of (weight, value), capacity W.
func matchKnapsack(t *task.Task) (string, bool) {
	if !descContains(t, "knapsack") {
		return "", false
	}
	return `n = int(input())
items = [tuple(map(int, input().split())) for _ in range(n)]
capacity = int(input())
dp = [0] * (capacity + 1)
for w, v in items:
    for c in range(capacity, w - 1, -1):
        dp[c] = max(dp[c], dp[c - w] + v)
print(dp[capacity])
`, true
}

// matchLCS: longest common subsequence length of two lines.
func matchLCS(t *task.Task) (string, bool) {
	if !descContains(t, "longest common subsequence") {
		return "", false
	}
	return `a = input()
b = input()
dp = [[0] * (len(b) + 1) for _ in range(len(a) + 1)]
for i in range(1, len(a) + 1):
    for j in range(1, len(b) + 1):
        if a[i - 1] == b[j - 1]:
            dp[i][j] = dp[i - 1][j - 1] + 1
        else:
            dp[i][j] = max(dp[i - 1][j], dp[i][j - 1])
print(dp[len(a)][len(b)])
`, true
}

// matchCoinChange: fewest coins to make an amount, -1 if impossible.
func matchCoinChange(t *task.Task) (string, bool) {
	if !descContains(t, "coin change", "fewest coins", "minimum number of coins") {
		return "", false
	}
	return `n = int(input())
coins = [int(input()) for _ in range(n)]
amount = int(input())
INF = float('inf')
dp = [0] + [INF] * amount
for c in range(1, amount + 1):
    for coin in coins:
        if coin <= c:
            dp[c] = min(dp[c], dp[c - coin] + 1)
print(dp[amount] if dp[amount] != INF else -1)
`, true
}

// matchClimbingStairs: distinct ways to climb N stairs taking 1 or 2 at a time.
func matchClimbingStairs(t *task.Task) (string, bool) {
	if !descContains(t, "climbing stairs", "climb stairs", "climb the stairs") {
		return "", false
	}
	return `n = int(input())
a, b = 1, 1
for _ in range(n):
    a, b = b, a + b
print(a)
`, true
}

// matchLIS: length of the longest strictly increasing subsequence.
func matchLIS(t *task.Task) (string, bool) {
	if !descContains(t, "longest increasing subsequence") {
		return "", false
	}
	return `n = int(input())
nums = [int(input()) for _ in range(n)]
tails = []
import bisect
for v in nums:
    i = bisect.bisect_left(tails, v)
    if i == len(tails):
        tails.append(v)
    else:
        tails[i] = v
print(len(tails))
`, true
}

// --- combinatorics -------------------------------------------------------

// matchPermutations: print all permutations of the input tokens.
func matchPermutations(t *task.Task) (string, bool) {
	if !descContains(t, "all permutations", "every permutation") {
		return "", false
	}
	return `import itertools
items = input().split()
for p in itertools.permutations(items):
    print(' '.join(p))
`, true
}

// matchCombinations: print all size-K combinations of the input tokens.
func matchCombinations(t *task.Task) (string, bool) {
	if !descContains(t, "combinations of size", "choose k", "all combinations") {
		return "", false
	}
	return `import itertools
items = input().split()
k = int(input())
for c in itertools.combinations(items, k):
    print(' '.join(c))
`, true
}

// matchSubsets: print the power set of the input tokens.
func matchSubsets(t *task.Task) (string, bool) {
	if !descContains(t, "all subsets", "power set", "subsets of") {
		return "", false
	}
	return `import itertools
items = input().split()
for r in range(len(items) + 1):
    for c in itertools.combinations(items, r):
        print(' '.join(c))
`, true
}

// --- intervals -------------------------------------------------------

// matchActivitySelection: maximum count of non-overlapping intervals.
func matchActivitySelection(t *task.Task) (string, bool) {
	if !descContains(t, "activity selection", "maximum number of non-overlapping", "non-overlapping intervals") {
		return "", false
	}
	return `n = int(input())
intervals = [tuple(map(int, input().split())) for _ in range(n)]
intervals.sort(key=lambda iv: iv[1])
count = 0
last_end = float('-inf')
for s, e in intervals:
    if s >= last_end:
        count += 1
        last_end = e
print(count)
`, true
}

// matchMinIntervalRemoval: minimum removals to make intervals non-overlapping.
func matchMinIntervalRemoval(t *task.Task) (string, bool) {
	if !descContains(t, "minimum number of intervals to remove", "remove the fewest intervals") {
		return "", false
	}
	return `n = int(input())
intervals = [tuple(map(int, input().split())) for _ in range(n)]
intervals.sort(key=lambda iv: iv[1])
kept = 0
last_end = float('-inf')
for s, e in intervals:
    if s >= last_end:
        kept += 1
        last_end = e
print(n - kept)
`, true
}

// --- data-structure simulations -----------------------------------------

// matchMinStack: simulate a stack supporting push/pop/min queries.
func matchMinStack(t *task.Task) (string, bool) {
	if !descContains(t, "min stack", "minstack") {
		return "", false
	}
	return `n = int(input())
stack = []
out = []
for _ in range(n):
    parts = input().split()
    op = parts[0]
    if op == "push":
        v = int(parts[1])
        m = v if not stack else min(v, stack[-1][1])
        stack.append((v, m))
    elif op == "pop":
        if stack:
            stack.pop()
    elif op == "top":
        out.append(str(stack[-1][0]))
    elif op == "min":
        out.append(str(stack[-1][1]))
print('\n'.join(out))
`, true
}

// matchLRUCache: simulate an LRU cache of fixed capacity.
func matchLRUCache(t *task.Task) (string, bool) {
	if !descContains(t, "lru cache", "least recently used cache") {
		return "", false
	}
	return `from collections import OrderedDict
capacity = int(input())
n = int(input())
cache = OrderedDict()
out = []
for _ in range(n):
    parts = input().split()
    if parts[0] == "put":
        k, v = int(parts[1]), int(parts[2])
        if k in cache:
            cache.move_to_end(k)
        cache[k] = v
        if len(cache) > capacity:
            cache.popitem(last=False)
    else:
        k = int(parts[1])
        if k in cache:
            cache.move_to_end(k)
            out.append(str(cache[k]))
        else:
            out.append("-1")
print('\n'.join(out))
`, true
}

// matchTrie: insert a dictionary of words then answer search/prefix-count queries.
func matchTrie(t *task.Task) (string, bool) {
	if !descContains(t, "trie") {
		return "", false
	}
	return `class Node:
    def __init__(self):
        self.children = {}
        self.count = 0
        self.end = False

n = int(input())
root = Node()
for _ in range(n):
    word = input()
    node = root
    for ch in word:
        node = node.children.setdefault(ch, Node())
        node.count += 1
    node.end = True

q = int(input())
out = []
for _ in range(q):
    parts = input().split()
    op, word = parts[0], parts[1]
    node = root
    ok = True
    for ch in word:
        if ch not in node.children:
            ok = False
            break
        node = node.children[ch]
    if op == "search":
        out.append("yes" if ok and node.end else "no")
    elif op == "prefix":
        out.append(str(node.count) if ok else "0")
print('\n'.join(out))
`, true
}

// matchRPNEvaluation: evaluate a reverse-Polish-notation expression.
func matchRPNEvaluation(t *task.Task) (string, bool) {
	if !descContains(t, "reverse polish", "rpn", "postfix expression") {
		return "", false
	}
	return `tokens = input().split()
stack = []
ops = {
    '+': lambda a, b: a + b,
    '-': lambda a, b: a - b,
    '*': lambda a, b: a * b,
    '/': lambda a, b: int(a / b),
}
for tok in tokens:
    if tok in ops:
        b = stack.pop()
        a = stack.pop()
        stack.append(ops[tok](a, b))
    else:
        stack.append(int(tok))
print(stack[-1])
`, true
}

// --- matrix operations ----------------------------------------------------

// matchMatrixTranspose: transpose an R x C matrix.
func matchMatrixTranspose(t *task.Task) (string, bool) {
	if !descContains(t, "transpose") {
		return "", false
	}
	return `rows, cols = map(int, input().split())
matrix = [list(map(int, input().split())) for _ in range(rows)]
for c in range(cols):
    print(' '.join(str(matrix[r][c]) for r in range(rows)))
`, true
}

// matchMatrixMultiply: multiply two matrices given as dims then rows.
func matchMatrixMultiply(t *task.Task) (string, bool) {
	if !descContains(t, "multiply two matrices", "matrix multiplication") {
		return "", false
	}
	return `ar, ac = map(int, input().split())
a = [list(map(int, input().split())) for _ in range(ar)]
br, bc = map(int, input().split())
b = [list(map(int, input().split())) for _ in range(br)]
result = [[sum(a[i][k] * b[k][j] for k in range(ac)) for j in range(bc)] for i in range(ar)]
for row in result:
    print(' '.join(map(str, row)))
`, true
}

// --- number theory ---------------------------------------------------------

// matchSieve: list primes up to N using the sieve of Eratosthenes.
func matchSieve(t *task.Task) (string, bool) {
	if !descContains(t, "sieve of eratosthenes", "primes up to", "sieve") {
		return "", false
	}
	return `n = int(input())
is_prime = [True] * (n + 1)
if n >= 0:
    is_prime[0] = False
if n >= 1:
    is_prime[1] = False
for i in range(2, int(n ** 0.5) + 1):
    if is_prime[i]:
        for j in range(i * i, n + 1, i):
            is_prime[j] = False
print(' '.join(str(i) for i in range(n + 1) if is_prime[i]))
`, true
}

// matchModularExponentiation: compute base^exp mod m.
func matchModularExponentiation(t *task.Task) (string, bool) {
	if !descContains(t, "modular exponentiation", "mod m", "power modulo") {
		return "", false
	}
	return `base = int(input())
exp = int(input())
mod = int(input())
print(pow(base, exp, mod))
`, true
}

// --- text / csv / json aggregations ---------------------------------------

// matchRegexCount: count lines matching a regular expression.
func matchRegexCount(t *task.Task) (string, bool) {
	if !descContains(t, "matches the regular expression", "lines matching the pattern") {
		return "", false
	}
	return `import re
n = int(input())
pattern = input()
count = 0
for _ in range(n):
    line = input()
    if re.search(pattern, line):
        count += 1
print(count)
`, true
}

// matchCSVColumnSum: sum a numeric column across CSV rows given on stdin.
func matchCSVColumnSum(t *task.Task) (string, bool) {
	if !descContains(t, "sum of the csv column", "sum the column") {
		return "", false
	}
	return `import csv
import sys
col = input()
reader = csv.DictReader(sys.stdin)
total = 0.0
for row in reader:
    total += float(row[col])
if total == int(total):
    print(int(total))
else:
    print(total)
`, true
}

// matchJSONFieldSum: sum a field across a JSON array of objects on stdin.
func matchJSONFieldSum(t *task.Task) (string, bool) {
	if !descContains(t, "sum of the json field", "sum the field") {
		return "", false
	}
	return `import json
import sys
field = input()
data = json.loads(sys.stdin.read())
total = sum(item[field] for item in data)
if total == int(total):
    print(int(total))
else:
    print(total)
`, true
}
