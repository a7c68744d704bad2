package sqlinline

const QCreateImageJobsTable = `--sql 47525999-184c-4f4b-98c9-d8b46627b66c
create table if not exists image_jobs (
    id uuid primary key,
    user_id text not null default '',
    status text not null default 'PENDING',
    image_urls jsonb not null default '[]'::jsonb,
    metadata jsonb not null default '{}'::jsonb,
    results jsonb not null default '[]'::jsonb,
    message text not null default '',
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
`

const QCreateImageJobsStatusIndex = `--sql 9bfc10f3-5c93-457b-ab46-ff622b240d82
create index if not exists image_jobs_status_created_idx
    on image_jobs (status, created_at);
`

const QInsertImageJob = `--sql a7fab187-d44d-4df7-b378-445a24c4266a
insert into image_jobs (id, user_id, status, image_urls, metadata, message)
values ($1, $2, 'PENDING', $3, $4, $5)
returning created_at, updated_at;
`

const QSelectImageJob = `--sql e85471e2-0019-4484-bd08-c55d13281611
select id::text, user_id, status, image_urls, metadata, results, message, created_at, updated_at
from image_jobs
where id = $1;
`

const QClaimImageJob = `--sql dd3c7623-1f72-454f-82f9-5ee97487bf82
with next_job as (
    select id
    from image_jobs
    where status = 'PENDING'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update image_jobs
    set status = 'RUNNING', updated_at = now()
    where id in (select id from next_job)
    returning id::text, user_id, status, image_urls, metadata, results, message, created_at, updated_at
)
select * from updated;
`

const QCompleteImageJob = `--sql 40b8e367-aff6-46ab-8295-29f32d57bcb1
update image_jobs
set status = 'COMPLETED', results = $2, message = $3, updated_at = now()
where id = $1;
`

const QFailImageJob = `--sql 0e77d9ec-dbbf-4fb8-8cff-bf3300368934
update image_jobs
set status = 'FAILED', message = $2, updated_at = now()
where id = $1;
`
